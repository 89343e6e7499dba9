// Command referee runs a Quantum Reversi match between two solver
// processes (§6.2).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/qreversi/referee/internal/display"
	"github.com/qreversi/referee/internal/referee"
	"github.com/qreversi/referee/internal/solverproc"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] name1 command1 name2 command2\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "  name1    : first player's name")
	fmt.Fprintln(os.Stderr, "  command1 : first player's command")
	fmt.Fprintln(os.Stderr, "  name2    : second player's name")
	fmt.Fprintln(os.Stderr, "  command2 : second player's command")
	flag.PrintDefaults()
}

func main() {
	displayFlag := flag.Bool("display", false, "print per-step board and banner during play")
	timeLimit := flag.Duration("time-limit", referee.DefaultTimeLimit, "per-player time budget")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 4 {
		usage()
		os.Exit(1)
	}
	name1, command1, name2, command2 := args[0], args[1], args[2], args[3]

	p0, err := solverproc.Spawn(name1, command1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "referee: %v\n", err)
		os.Exit(1)
	}
	p1, err := solverproc.Spawn(name2, command2)
	if err != nil {
		fmt.Fprintf(os.Stderr, "referee: %v\n", err)
		os.Exit(1)
	}

	opts := []referee.Option{referee.WithTimeLimit(*timeLimit)}
	if *displayFlag {
		opts = append(opts, referee.WithDisplay(os.Stdout))
	}
	ref := referee.New(p0, p1, opts...)

	res, err := ref.Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "referee: %v\n", err)
		os.Exit(1)
	}

	printer := display.New(os.Stdout)
	printer.MoveLog(ref.LogMoves())

	names := ref.Names()
	if res.Forfeited >= 0 {
		msg := fmt.Sprintf("%s's program was stopped: %s", names[res.Forfeited], res.Reason)
		printer.Forfeit(msg, names[res.Winner])
		return
	}

	winnerName := ""
	if res.Winner >= 0 {
		winnerName = names[res.Winner]
	}
	printer.Score(names[0], res.Scores[0], names[1], res.Scores[1], winnerName, res.Winner < 0)
}
