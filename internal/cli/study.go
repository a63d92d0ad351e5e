package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/vocab-drill/internal/session"
)

const studyHelp = `Enter  next batch
m N    mark word N as mastered
f N    toggle favorite on word N
h      help
q      quit`

func init() {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Study interactively",
		Long:  "Interactive study loop.\n\n" + studyHelp,
		Run:   runStudy,
	}

	cmd.Flags().IntP("count", "c", 0, "Batch size (default: the displayCount preference)")

	RootCmd.AddCommand(cmd)
}

func runStudy(cmd *cobra.Command, args []string) {
	count, _ := cmd.Flags().GetInt("count")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	prefs, err := s.Preferences(cmd.Context())
	if err != nil {
		exitErr("load preferences", err)
	}
	sess, err := newSession(s)
	if err != nil {
		exitErr("engine", err)
	}

	if err := studyLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), sess, prefs.VisibleFields, count); err != nil {
		exitErr("study", err)
	}
}

func studyLoop(ctx context.Context, in io.Reader, out io.Writer, sess *session.Session, fields []string, count int) error {
	refresh := func() error {
		cards, err := sess.Refresh(ctx, count)
		if errors.Is(err, session.ErrCooldown) {
			fmt.Fprintln(out, "slow down, showing the same words")
		} else if err != nil {
			return err
		}
		renderCards(out, cards, fields)
		return nil
	}

	if err := refresh(); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "", "n":
			if err := refresh(); err != nil {
				return err
			}
		case "q", "quit", "exit":
			return nil
		case "h", "help", "?":
			fmt.Fprintln(out, studyHelp)
		case "m", "f":
			card, ok := pickCard(sess.Current(), arg)
			if !ok {
				fmt.Fprintf(out, "no word %q on screen\n", arg)
				continue
			}
			if cmd == "m" {
				if _, err := sess.Master(ctx, card.ID); err != nil {
					return err
				}
				fmt.Fprintf(out, "mastered %s\n", card.Kanji)
			} else {
				rec, err := sess.ToggleFavorite(ctx, card.ID)
				if err != nil {
					return err
				}
				if rec.IsFavorite {
					fmt.Fprintf(out, "favorited %s\n", card.Kanji)
				} else {
					fmt.Fprintf(out, "unfavorited %s\n", card.Kanji)
				}
			}
			renderCards(out, sess.Current(), fields)
		default:
			fmt.Fprintf(out, "unknown command %q (h for help)\n", line)
		}
	}
}

// pickCard resolves a 1-based position on screen.
func pickCard(cards []session.Card, arg string) (session.Card, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(cards) {
		return session.Card{}, false
	}
	return cards[n-1], true
}
