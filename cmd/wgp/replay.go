package main

import (
	"fmt"

	"github.com/fairwaylabs/wolfgoatpig/internal/history"
)

// ReplayCmd prints an archived round record, optionally only the holes that
// were flagged for manual review.
type ReplayCmd struct {
	Path       string `arg:"" help:"Path to a round record JSON file"`
	ReviewOnly bool   `help:"Show only holes flagged for manual review"`
}

func (cmd *ReplayCmd) Run() error {
	rec, err := history.ReadRecord(cmd.Path)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Round %s on %s, recorded %s",
		rec.GameID, rec.Course, rec.RecordedAt.Format("2006-01-02 15:04"))))
	for _, h := range rec.Holes {
		if cmd.ReviewOnly && !h.NeedsManualReview {
			continue
		}
		printHole(h)
	}
	if cmd.ReviewOnly && len(rec.ReviewHoles) == 0 {
		fmt.Println("nothing to review")
	}

	fmt.Println(headerStyle.Render("Final points"))
	for _, p := range rec.Players {
		line := fmt.Sprintf("  %-12s (hcp %4.1f) %+6.2f quarters", p.Name, p.Handicap, p.Points)
		if p.Points >= 0 {
			fmt.Println(winStyle.Render(line))
		} else {
			fmt.Println(lossStyle.Render(line))
		}
	}
	return nil
}
