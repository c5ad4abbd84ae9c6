package cmd

import (
	"fmt"

	"github.com/jsphweid/fictadex/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Prints the notes of a MIDI file",
	Long:  `Prints every track of a MIDI file, such as one written by corrections --midi, with its note-ons in ticks.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midi.ReadFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for i, track := range s.Tracks {
			fmt.Fprintf(out, "track %d: %s\n", i, midi.TrackName(track))
			for _, o := range midi.Onsets(track) {
				fmt.Fprintf(out, "  %v\t%v\n", o.Tick, o.Key)
			}
		}
		return nil
	},
}
