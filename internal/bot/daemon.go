package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/grishanin/antlog/internal/config"
	"github.com/grishanin/antlog/internal/ocr"
	"github.com/grishanin/antlog/internal/pipeline"
	"github.com/grishanin/antlog/internal/stats"
)

// Processor runs one recognized-text batch through the parsing pipeline.
type Processor interface {
	Process(ctx context.Context, text string, msg pipeline.Message) (pipeline.Summary, error)
}

// Daemon is the main bot process. It connects to a chat platform via an
// Adapter, downloads photo attachments from inbound messages, runs OCR
// and the parsing pipeline, and replies with parse problems and stat
// diffs.
type Daemon struct {
	adapter   Adapter
	extractor ocr.TextExtractor
	processor Processor
	history   *stats.History
	channelID string // default channel for announcements and digests
	imageDir  string
	digest    config.DigestConfig
	out       io.Writer
}

// DaemonOpts holds parameters for creating a new Daemon.
type DaemonOpts struct {
	Adapter   Adapter
	Extractor ocr.TextExtractor
	Processor Processor
	History   *stats.History // optional; enables the scheduled digest
	ChannelID string
	ImageDir  string
	Digest    config.DigestConfig
	Out       io.Writer // defaults to os.Stdout
}

// NewDaemon creates a Daemon with the given options.
func NewDaemon(opts DaemonOpts) (*Daemon, error) {
	if opts.Adapter == nil {
		return nil, fmt.Errorf("bot: adapter is required")
	}
	if opts.Extractor == nil {
		return nil, fmt.Errorf("bot: extractor is required")
	}
	if opts.Processor == nil {
		return nil, fmt.Errorf("bot: processor is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Daemon{
		adapter:   opts.Adapter,
		extractor: opts.Extractor,
		processor: opts.Processor,
		history:   opts.History,
		channelID: opts.ChannelID,
		imageDir:  opts.ImageDir,
		digest:    opts.Digest,
		out:       out,
	}, nil
}

// Run starts the bot. It connects the adapter, announces itself, and
// pumps inbound messages until the context is cancelled. On shutdown it
// closes the adapter gracefully.
func (d *Daemon) Run(ctx context.Context) error {
	fmt.Fprintf(d.out, "antlog connecting...\n")
	if err := d.adapter.Connect(ctx); err != nil {
		return fmt.Errorf("bot: connect: %w", err)
	}

	inbound, err := d.adapter.Listen(ctx)
	if err != nil {
		d.adapter.Close()
		return fmt.Errorf("bot: listen: %w", err)
	}

	if d.channelID != "" {
		if err := d.adapter.Send(ctx, OutboundMessage{ChannelID: d.channelID, Text: "hello"}); err != nil {
			log.Printf("bot: send hello: %v", err)
		}
	}

	if d.digest.Enabled && d.digest.Cron != "" && d.history != nil {
		go d.runDigestScheduler(ctx)
	}

	fmt.Fprintf(d.out, "antlog online\n")

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(d.out, "antlog shutting down...\n")
			if err := d.adapter.Close(); err != nil {
				log.Printf("bot: close adapter: %v", err)
			}
			return nil

		case msg, ok := <-inbound:
			if !ok {
				fmt.Fprintf(d.out, "antlog inbound channel closed\n")
				return nil
			}
			d.handleMessage(ctx, msg)
		}
	}
}

// handleMessage processes the photo attachments of one inbound message.
// Messages without attachments are ignored.
func (d *Daemon) handleMessage(ctx context.Context, msg InboundMessage) {
	for _, att := range msg.Attachments {
		data, err := d.adapter.Download(ctx, att)
		if err != nil {
			log.Printf("bot: download %s: %v", att.URL, err)
			continue
		}

		fileName := fmt.Sprintf("%d_%s.jpg", msg.Timestamp.Unix(), msg.UserID)
		d.archiveImage(fileName, data)

		text, err := d.extractor.ExtractText(ctx, data)
		if err != nil {
			log.Printf("bot: ocr %s: %v", fileName, err)
			d.sendTo(ctx, msg.ChannelID, "Не удалось распознать текст, попробуйте ещё раз")
			continue
		}
		log.Printf("bot: %s", text)

		sum, err := d.processor.Process(ctx, text, pipeline.Message{
			UserID:   msg.UserID,
			Username: msg.UserName,
			ReplyTo:  msg.ChannelID,
			Date:     msg.Timestamp.Unix(),
			FileName: fileName,
		})
		if err != nil {
			log.Printf("bot: process %s: %v", fileName, err)
		}
		fmt.Fprintf(d.out, "%s: %s\n", fileName, sum.Describe())
	}
}

// archiveImage saves a copy of the downloaded photo for later review.
// Best-effort: a full image directory never blocks parsing.
func (d *Daemon) archiveImage(fileName string, data []byte) {
	if d.imageDir == "" {
		return
	}
	if err := os.MkdirAll(d.imageDir, 0o755); err != nil {
		log.Printf("bot: create image dir: %v", err)
		return
	}
	path := filepath.Join(d.imageDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("bot: archive %s: %v", path, err)
	}
}

// runDigestScheduler posts the latest kill-stat diff on the configured
// cron schedule.
func (d *Daemon) runDigestScheduler(ctx context.Context) {
	wait := nextCronDuration(d.digest.Cron)
	if wait <= 0 {
		log.Printf("bot: invalid digest cron %q, digest disabled", d.digest.Cron)
		return
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			d.fireDigest(ctx)
			if wait := nextCronDuration(d.digest.Cron); wait > 0 {
				timer.Reset(wait)
			} else {
				return
			}
		}
	}
}

// fireDigest sends one digest message with the most recent stat diff.
func (d *Daemon) fireDigest(ctx context.Context) {
	diff, err := d.history.DiffLatest()
	if err != nil {
		log.Printf("bot: digest: %v", err)
		return
	}
	if diff == nil {
		// No snapshots yet, nothing to post.
		return
	}
	d.sendTo(ctx, d.channelID, stats.FormatDiff(diff))
}

// sendTo sends text to a channel, logging failures.
func (d *Daemon) sendTo(ctx context.Context, channelID, text string) {
	if channelID == "" {
		return
	}
	if err := d.adapter.Send(ctx, OutboundMessage{ChannelID: channelID, Text: text}); err != nil {
		log.Printf("bot: send to %s: %v", channelID, err)
	}
}
