package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/session"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved conversation transcripts",
	Long: `Manage conversation transcripts saved by the chat command.

Transcripts are an archive of past exchanges; media attachments are
recorded by type and size only.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved transcripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		transcripts, err := session.List()
		if err != nil {
			return fmt.Errorf("listing transcripts: %w", err)
		}

		if len(transcripts) == 0 {
			fmt.Println("No transcripts found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMODEL\tTURNS\tUPDATED")
		for _, t := range transcripts {
			name := t.Name
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				t.GetShortID(), name, t.Model, t.TurnCount(),
				t.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved transcript",
	Long: `Show a saved transcript.

The ID can be a short prefix (minimum 4 characters), a full UUID, or
"latest" for the most recently updated transcript.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := session.FindByPrefix(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Transcript %s (%s, %d turns)\n\n", t.GetDisplayName(), t.Model, t.TurnCount())
		for _, entry := range t.Turns {
			label := "You"
			if entry.Role == string(chat.RoleAssistant) {
				label = "Guide"
			}
			fmt.Printf("%s> %s\n\n", label, renderEntry(entry))
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := session.FindByPrefix(args[0])
		if err != nil {
			return err
		}

		if err := session.Delete(t.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted transcript %s\n", t.GetShortID())
		return nil
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a saved transcript",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := session.FindByPrefix(args[0])
		if err != nil {
			return err
		}

		t.Name = args[1]
		if err := session.Save(t); err != nil {
			return err
		}

		fmt.Printf("Renamed transcript %s to %q\n", t.GetShortID(), t.Name)
		return nil
	},
}

// renderEntry flattens a stored turn into a display line.
func renderEntry(entry session.Entry) string {
	var parts []string
	for _, part := range entry.Parts {
		switch part.Kind {
		case string(chat.PartText):
			parts = append(parts, part.Text)
		case string(chat.PartImage):
			parts = append(parts, fmt.Sprintf("[image %s, %d bytes]", part.MIMEType, part.Size))
		case string(chat.PartAudio):
			parts = append(parts, fmt.Sprintf("[audio %s, %d bytes]", part.MIMEType, part.Size))
		}
	}
	return strings.Join(parts, "\n")
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsRenameCmd)
}
