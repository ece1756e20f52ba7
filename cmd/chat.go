/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/capture"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/config"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/session"
	"github.com/spf13/cobra"
)

var (
	imagePath      string
	audioPath      string
	personaName    string
	saveTranscript bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the guide assistant",
	Long: `Send a message to the guide assistant and print the reply.

With a message argument this performs a single exchange; an image or an
audio recording can be attached with flags. If no message is provided,
an interactive conversation starts.

If no message is provided as an argument and stdin is not a terminal,
the message is read from stdin.

Examples:
  guidechat chat "What should I see in Paris?"
  guidechat chat --image eiffel.jpg "Where was this taken?"
  guidechat chat --audio question.ogg
  guidechat chat`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration from file
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if err := applyPersona(cfg, personaName); err != nil {
			return err
		}

		dispatcher, cleanup, err := newDispatcher(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		// Interactive mode when no message and nothing attached,
		// unless input is being piped in
		if len(args) == 0 && imagePath == "" && audioPath == "" && stdinIsTerminal() {
			return runInteractive(dispatcher, cfg)
		}

		// Compose the pending turn from arguments and attachments
		pending := &chat.PendingInput{}
		if len(args) > 0 {
			pending.Text = strings.Join(args, " ")
		} else if imagePath == "" && audioPath == "" {
			// Read from stdin
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			pending.Text = strings.TrimSpace(string(input))
		}

		picker := capture.FilePicker{}
		if imagePath != "" {
			part, err := picker.PickImage(imagePath)
			if err != nil {
				return fmt.Errorf("attaching image: %w", err)
			}
			if err := pending.AttachImagePart(part); err != nil {
				return fmt.Errorf("attaching image: %w", err)
			}
		}
		if audioPath != "" {
			part, err := picker.PickAudio(audioPath)
			if err != nil {
				return fmt.Errorf("attaching audio: %w", err)
			}
			if err := pending.AttachAudioPart(part); err != nil {
				return fmt.Errorf("attaching audio: %w", err)
			}
		}

		turn, err := pending.Assemble()
		if err != nil {
			return err
		}

		reply, err := submitWithSpinner(dispatcher, turn)
		if err != nil {
			return describeSubmitError(err)
		}
		pending.Reset()

		fmt.Println(reply.Text())

		if saveTranscript {
			if err := session.Save(session.FromConversation(dispatcher.Conversation(), cfg.Model)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save transcript: %v\n", err)
			}
		}

		return nil
	},
}

// runInteractive starts an interactive conversation.
func runInteractive(dispatcher *chat.Dispatcher, cfg *config.Config) error {
	conv := dispatcher.Conversation()

	// Print conversation header
	fmt.Fprintf(os.Stderr, "\n=== ChatVerse Guide [%s] ===\n", shortID(conv.ID))
	fmt.Fprintf(os.Stderr, "Model: %s\n", cfg.Model)
	fmt.Fprintf(os.Stderr, "Type '/help' for commands, '/exit' or 'Ctrl+D' to quit\n")
	fmt.Fprintf(os.Stderr, "===================================\n\n")

	pending := &chat.PendingInput{}
	picker := capture.FilePicker{}
	recorder := &capture.ScriptedRecorder{}
	var recording *capture.Handle

	scanner := bufio.NewScanner(os.Stdin)

	for {
		// Display prompt with attachment markers
		fmt.Fprint(os.Stderr, composePrompt(pending, recording != nil))

		// Read input
		if !scanner.Scan() {
			// EOF (Ctrl+D) or error
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			fmt.Fprintln(os.Stderr, "\nGoodbye!")
			break
		}

		input := strings.TrimSpace(scanner.Text())

		// Handle special commands
		if strings.HasPrefix(input, "/") && input != "/send" {
			cont, err := handleComposeCommand(input, conv, pending, picker, recorder, &recording)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			if cont {
				continue
			}
			break
		}

		// A bare /send submits attachments without text
		if input != "/send" {
			pending.Text = input
		}

		turn, err := pending.Assemble()
		if err != nil {
			if errors.Is(err, chat.ErrEmptyInput) {
				continue
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		reply, err := submitWithSpinner(dispatcher, turn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", describeSubmitError(err))
			// The user's turn stays in history; the staged input is kept
			// so it can be corrected and resent.
			continue
		}

		// Clear the staging slot only after a successful exchange
		pending.Reset()

		if saveTranscript {
			if err := session.Save(session.FromConversation(conv, cfg.Model)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save transcript: %v\n", err)
			}
		}

		fmt.Printf("\nGuide> %s\n\n", reply.Text())
	}

	return nil
}

// handleComposeCommand processes special commands in interactive mode.
// Returns false to exit the loop.
func handleComposeCommand(input string, conv *chat.Conversation, pending *chat.PendingInput, picker capture.FilePicker, recorder *capture.ScriptedRecorder, recording **capture.Handle) (bool, error) {
	fields := strings.Fields(input)
	command := strings.ToLower(fields[0])

	switch command {
	case "/help", "/h":
		fmt.Fprintln(os.Stderr, "\nAvailable commands:")
		fmt.Fprintln(os.Stderr, "  /image <path>    - Attach an image file")
		fmt.Fprintln(os.Stderr, "  /audio <path>    - Attach an audio file")
		fmt.Fprintln(os.Stderr, "  /record          - Start recording audio")
		fmt.Fprintln(os.Stderr, "  /stop            - Stop recording and attach the clip")
		fmt.Fprintln(os.Stderr, "  /discard         - Drop attached media")
		fmt.Fprintln(os.Stderr, "  /send            - Send attachments without text")
		fmt.Fprintln(os.Stderr, "  /info, /i        - Show conversation information")
		fmt.Fprintln(os.Stderr, "  /exit, /quit     - Exit")
		fmt.Fprintln(os.Stderr, "  Ctrl+D           - Exit")
		fmt.Fprintln(os.Stderr, "")
		return true, nil

	case "/image":
		if len(fields) < 2 {
			return true, fmt.Errorf("usage: /image <path>")
		}
		part, err := picker.PickImage(fields[1])
		if err != nil {
			return true, err
		}
		if err := pending.AttachImagePart(part); err != nil {
			return true, err
		}
		fmt.Fprintf(os.Stderr, "Attached image %s\n", part.FileName)
		return true, nil

	case "/audio":
		if len(fields) < 2 {
			return true, fmt.Errorf("usage: /audio <path>")
		}
		part, err := picker.PickAudio(fields[1])
		if err != nil {
			return true, err
		}
		if err := pending.AttachAudioPart(part); err != nil {
			return true, err
		}
		fmt.Fprintf(os.Stderr, "Attached audio %s\n", part.FileName)
		return true, nil

	case "/record":
		if *recording != nil {
			return true, fmt.Errorf("already recording; use /stop first")
		}
		handle, err := recorder.Start()
		if err != nil {
			return true, err
		}
		*recording = handle
		fmt.Fprintln(os.Stderr, "Recording... type /stop to finish")
		return true, nil

	case "/stop":
		if *recording == nil {
			return true, fmt.Errorf("no recording in progress")
		}
		clip, err := recorder.Stop(*recording)
		*recording = nil
		if err != nil {
			return true, err
		}
		if err := pending.AttachAudioPart(clip); err != nil {
			return true, err
		}
		fmt.Fprintf(os.Stderr, "Attached recording (%d bytes)\n", clip.Size())
		return true, nil

	case "/discard":
		pending.ClearImage()
		pending.ClearAudio()
		fmt.Fprintln(os.Stderr, "Attachments dropped")
		return true, nil

	case "/info", "/i":
		fmt.Fprintln(os.Stderr, "\nConversation:")
		fmt.Fprintf(os.Stderr, "  ID: %s\n", shortID(conv.ID))
		fmt.Fprintf(os.Stderr, "  Turns: %d\n", conv.Len())
		fmt.Fprintf(os.Stderr, "  Created: %s\n", conv.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(os.Stderr, "")
		return true, nil

	case "/exit", "/quit", "/q":
		fmt.Fprintln(os.Stderr, "Goodbye!")
		return false, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type '/help' for available commands)", command)
	}
}

// composePrompt renders the input prompt with attachment markers.
func composePrompt(pending *chat.PendingInput, recording bool) string {
	var markers []string
	if pending.HasImage() {
		markers = append(markers, "img")
	}
	if pending.HasAudio() {
		markers = append(markers, "audio")
	}
	if recording {
		markers = append(markers, "rec")
	}
	if len(markers) == 0 {
		return "You> "
	}
	return fmt.Sprintf("You [%s]> ", strings.Join(markers, ","))
}

// submitWithSpinner dispatches a turn while showing a waiting spinner.
func submitWithSpinner(dispatcher *chat.Dispatcher, turn chat.Turn) (chat.Turn, error) {
	done := make(chan bool)
	go showSpinner(done)

	reply, err := dispatcher.Submit(context.Background(), turn)

	done <- true
	close(done)

	return reply, err
}

// showSpinner displays a spinner animation while waiting for response
func showSpinner(done chan bool) {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	i := 0
	for {
		select {
		case <-done:
			// Clear the spinner line
			fmt.Fprint(os.Stderr, "\r\033[K")
			return
		default:
			fmt.Fprintf(os.Stderr, "\r%s The guide is thinking...", spinners[i])
			i = (i + 1) % len(spinners)
			time.Sleep(80 * time.Millisecond)
		}
	}
}

// describeSubmitError turns dispatcher errors into actionable messages.
func describeSubmitError(err error) error {
	var configErr *chat.ConfigurationError
	if errors.As(err, &configErr) {
		return fmt.Errorf("%w\n\nSet your API key with: guidechat credential set <key>", err)
	}

	var transportErr *chat.TransportError
	if errors.As(err, &transportErr) {
		return fmt.Errorf("failed to communicate with the assistant; your message is kept in the conversation, please try again: %w", err)
	}

	return err
}

// stdinIsTerminal reports whether stdin is attached to a terminal.
func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// shortID returns the first 8 characters of a conversation ID.
func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func init() {
	rootCmd.AddCommand(chatCmd)

	// Add command options
	chatCmd.Flags().StringVar(&imagePath, "image", "", "Attach an image file (jpeg, png, webp, gif; max 10 MB)")
	chatCmd.Flags().StringVar(&audioPath, "audio", "", "Attach an audio file (mpeg, wav, webm, ogg; max 25 MB)")
	chatCmd.Flags().StringVarP(&personaName, "persona", "p", "", "Name of the persona template (without .toml extension)")
	chatCmd.Flags().BoolVar(&saveTranscript, "save", true, "Save the conversation transcript after each exchange")
}
