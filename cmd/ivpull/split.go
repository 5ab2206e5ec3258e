package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/komsit37/ivpull/pkg/ivpull/split"
)

func newSplitCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "split [file.csv]",
		Short: "Split a ticker-list CSV into fixed-size chunks",
		Long: `Split partitions a ticker-list CSV into chunk files named
{base}_partN.csv, each reproducing the original header. With a
positional file --size is required; without arguments split prompts
for the path and chunk size.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var list *split.List
			if len(args) == 1 {
				l, err := split.ReadList(args[0])
				if err != nil {
					return err
				}
				list = l
			} else {
				var path string
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("CSV file").
						Description("Path to the CSV file containing tickers").
						Value(&path),
				))
				if err := form.Run(); err != nil {
					return err
				}
				l, err := split.ReadList(path)
				if err != nil {
					return err
				}
				list = l

				fmt.Printf("Found %d tickers in the file.\n", len(l.Tickers))
				var sizeStr string
				form = huh.NewForm(huh.NewGroup(
					huh.NewInput().
						Title("Tickers per output file").
						Validate(func(s string) error {
							n, err := strconv.Atoi(s)
							if err != nil {
								return fmt.Errorf("enter a valid integer")
							}
							if n < 1 {
								return fmt.Errorf("enter a positive number")
							}
							if n > len(l.Tickers) {
								return fmt.Errorf("cannot exceed total number of tickers (%d)", len(l.Tickers))
							}
							return nil
						}).
						Value(&sizeStr),
				))
				if err := form.Run(); err != nil {
					return err
				}
				size, _ = strconv.Atoi(sizeStr)
			}

			paths, err := list.Split(size)
			if err != nil {
				return err
			}
			for i, p := range paths {
				n := size
				if i == len(paths)-1 {
					n = len(list.Tickers) - size*(len(paths)-1)
				}
				fmt.Printf("Created %s with %d tickers\n", p, n)
			}
			fmt.Printf("Completed! Generated %d CSV files.\n", len(paths))
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "tickers per output file")
	return cmd
}
