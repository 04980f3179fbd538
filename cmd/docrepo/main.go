// Command docrepo manages the document store directly, without the HTTP server.
package main

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"docrepo/internal/config"
	"docrepo/internal/logger"
	"docrepo/internal/service"
	"docrepo/internal/storage"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	s := &settings{}

	app := cli.NewApp()
	app.Name = "docrepo"
	app.Usage = "manage the document repository store"
	app.Flags = settingsFlags(s, config.Load())
	app.Commands = []*cli.Command{
		{
			Name:   "bootstrap",
			Usage:  "create every section/type folder",
			Action: withService(s, bootstrap),
		},
		{
			Name:   "ls",
			Usage:  "list documents in a folder, newest first",
			Flags:  folderFlags(),
			Action: withService(s, list),
		},
		{
			Name:      "put",
			Usage:     "upload a local file into a folder",
			ArgsUsage: "<file>",
			Flags:     folderFlags(),
			Action:    withService(s, put),
		},
		{
			Name:  "get",
			Usage: "download a stored document",
			Flags: append(folderFlags(),
				&cli.StringFlag{
					Name:     "name",
					Usage:    "stored name as printed by ls",
					Required: true,
				},
				&cli.StringFlag{
					Name:  "out",
					Usage: "output path (default: stored name in the current directory, - for stdout)",
				},
			),
			Action: withService(s, get),
		},
	}
	return app
}

type action func(c *cli.Context, svc service.DocumentService) error

func withService(s *settings, fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		log := logger.NewWithWriter(c.App.ErrWriter, config.LogConfig{Level: s.LogLevel, Format: "text"})

		store, err := storage.New(s.Storage, s.MinIO)
		if err != nil {
			return err
		}
		return fn(c, service.NewDocumentService(store, log))
	}
}

func bootstrap(c *cli.Context, svc service.DocumentService) error {
	if err := svc.Bootstrap(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "folders ready")
	return nil
}

func list(c *cli.Context, svc service.DocumentService) error {
	files, err := svc.List(c.Context, c.String("section"), c.String("type"))
	if err != nil {
		return err
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	for _, f := range files {
		fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", f.Name, humanize.IBytes(uint64(f.Size)), humanize.Time(f.CreatedAt))
	}
	return nil
}

func put(c *cli.Context, svc service.DocumentService) error {
	if c.NArg() != 1 {
		return errors.New("put expects exactly one file argument")
	}
	src := c.Args().First()

	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	ct := mime.TypeByExtension(filepath.Ext(src))
	if ct == "" {
		ct = "application/octet-stream"
	}

	doc, err := svc.Upload(c.Context, c.String("section"), c.String("type"), f, filepath.Base(src), ct, fi.Size())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, doc.Name)
	return nil
}

func get(c *cli.Context, svc service.DocumentService) error {
	rc, info, err := svc.Download(c.Context, c.String("section"), c.String("type"), c.String("name"))
	if err != nil {
		return err
	}
	defer rc.Close()

	out := c.String("out")
	if out == "-" {
		_, err = io.Copy(c.App.Writer, rc)
		return err
	}
	if out == "" {
		out = info.Name
	}

	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	n, err := io.Copy(dst, rc)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s (%s)\n", out, humanize.IBytes(uint64(n)))
	return nil
}
