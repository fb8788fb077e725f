// Command reelctl uploads videos, browses the gallery and prepares social images.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"reelvault/internal/client"
	"reelvault/internal/media"
)

type settings struct {
	BaseURL   string `envconfig:"REELVAULT_URL" default:"http://localhost:8080"`
	Token     string `envconfig:"REELVAULT_TOKEN"`
	CloudName string `envconfig:"CLOUDINARY_CLOUD_NAME"`
}

const usage = `usage: reelctl <command> [flags]

commands:
  upload   -title T -description D FILE
  list
  download -id PUBLIC_ID [-dir DIR]
  share    [-preset NAME] [-dir DIR] FILE`

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	var s settings
	if err := envconfig.Process("", &s); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	opts := []client.Option{client.WithToken(s.Token)}
	if s.CloudName != "" {
		d, err := media.NewDelivery(s.CloudName)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		opts = append(opts, client.WithDelivery(d))
	}
	c := client.New(s.BaseURL, opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	switch args[0] {
	case "upload":
		err = runUpload(ctx, c, args[1:])
	case "list":
		err = runList(ctx, c)
	case "download":
		err = runDownload(ctx, c, args[1:])
	case "share":
		err = runShare(ctx, c, args[1:])
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runUpload(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	title := fs.String("title", "", "video title")
	description := fs.String("description", "", "video description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 || *title == "" || *description == "" {
		return errors.New("upload needs -title, -description and one FILE")
	}

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if preview, err := client.LocalPreviewURL(path); err == nil {
		fmt.Println("Preview:", preview)
	}

	fmt.Println("Uploading...")
	v, err := c.UploadVideo(ctx, client.VideoUpload{
		Title:       *title,
		Description: *description,
		Filename:    filepath.Base(path),
		Size:        info.Size(),
		File:        f,
	})
	if err != nil {
		return err
	}

	fmt.Println("Video uploaded successfully!")
	fmt.Printf("id=%s publicId=%s\n", v.ID, v.PublicID)
	return nil
}

func runList(ctx context.Context, c *client.Client) error {
	cards, err := fetchCards(ctx, c)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Println("No videos found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tPUBLIC ID\tDURATION\tSIZE\tCOMPRESSION\tUPLOADED")
	for _, card := range cards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\t%s\n",
			card.Title, card.Video.PublicID, card.Duration, card.Size, card.Compression, card.Uploaded)
	}
	return w.Flush()
}

func runDownload(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	id := fs.String("id", "", "public id or record id")
	dir := fs.String("dir", ".", "target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == "" {
		return errors.New("download needs -id")
	}

	cards, err := fetchCards(ctx, c)
	if err != nil {
		return err
	}
	for _, card := range cards {
		if card.Video.PublicID != *id && card.Video.ID != *id {
			continue
		}
		path, err := c.DownloadVideo(ctx, card, *dir)
		if err != nil {
			return err
		}
		fmt.Println("Saved", path)
		return nil
	}
	return fmt.Errorf("no video with id %q", *id)
}

func runShare(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("share", flag.ContinueOnError)
	preset := fs.String("preset", media.DefaultSocialFormat, "social format name")
	dir := fs.String("dir", ".", "target directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return errors.New("share needs one FILE")
	}
	format, ok := media.LookupSocialFormat(*preset)
	if !ok {
		return fmt.Errorf("unknown preset %q", *preset)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	publicID, err := c.UploadImage(ctx, filepath.Base(fs.Arg(0)), f)
	if err != nil {
		return err
	}
	fmt.Println("Uploaded image:", publicID)

	path, err := c.DownloadImage(ctx, publicID, format, *dir)
	if err != nil {
		return err
	}
	fmt.Println("Saved", path)
	return nil
}

func fetchCards(ctx context.Context, c *client.Client) ([]client.Card, error) {
	videos, err := c.ListVideos(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch videos: %w", err)
	}
	return c.Cards(videos)
}
