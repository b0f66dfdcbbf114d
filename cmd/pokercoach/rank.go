package main

import (
	"fmt"

	"github.com/pokerlab/pokercoach/internal/deck"
	"github.com/pokerlab/pokercoach/internal/evaluator"
)

type RankCmd struct {
	Cards string `arg:"" help:"5 to 7 cards, e.g. 'Kh Qh Kd Qd 2c 2h 7s'" required:""`
}

func (c *RankCmd) Run(cli *Context) error {
	cards, err := deck.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	res, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s (score %d)\n",
		formatCards(cards), handStyle.Render(res.Class.String()), res.Score)
	return nil
}
