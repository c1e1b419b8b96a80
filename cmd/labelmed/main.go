package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	labelmed "github.com/pzy2000/LabelMed"
	"github.com/pzy2000/LabelMed/internal/config"
	"github.com/pzy2000/LabelMed/internal/utils"
	"github.com/pzy2000/LabelMed/pkg/log"
	"github.com/pzy2000/LabelMed/pkg/session"
)

func main() {
	log.NewLogger()

	// Zero or one positional argument: an image to preload. No flags.
	args := os.Args[1:]
	if len(args) > 1 {
		log.Fatal(log.Fields{"args": len(args)}, fmt.Sprintf("usage: %s [image]", filepath.Base(os.Args[0])))
	}

	cfg := config.Default()
	if path := config.GetConfigPath(); utils.FileExists(path) {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			log.Fatal(log.Fields{"path": path, "error": err.Error()}, "failed to load config")
		}
		if err := loaded.Validate(); err != nil {
			log.Fatal(log.Fields{"path": path, "error": err.Error()}, "invalid config")
		}
		cfg = loaded
	}

	labeler := labelmed.NewWithConfig(session.Config{
		Label:      cfg.Annotation.Label,
		HalfExtent: cfg.HalfExtent(),
	})

	if len(args) == 1 {
		if err := openImage(labeler, args[0]); err != nil {
			log.Fatal(log.Fields{"path": args[0], "error": err.Error()}, "failed to load image")
		}
	}

	runLoop(labeler, cfg, os.Stdin)
}

func openImage(labeler *labelmed.Labeler, path string) error {
	if !utils.IsImageFile(path) {
		log.Warn(log.Fields{"path": path}, "no known image extension, trying anyway")
	}
	if err := labeler.LoadImage(path); err != nil {
		return err
	}

	img := labeler.Image()
	log.Info(log.Fields{
		"path":   img.Path,
		"width":  img.Width,
		"height": img.Height,
	}, "image loaded")
	return nil
}

// runLoop reads annotation commands line by line: the headless stand-in for
// the clickable image surface.
func runLoop(labeler *labelmed.Labeler, cfg *config.Config, in io.Reader) {
	fmt.Println("commands: open PATH | click X Y | save [PATH] | preview [PATH] | quit")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "open":
			if len(fields) != 2 {
				fmt.Println("usage: open PATH")
				continue
			}
			if err := openImage(labeler, fields[1]); err != nil {
				log.Error(log.Fields{"path": fields[1], "error": err.Error()}, "load failed, prior image kept")
			}

		case "click":
			if len(fields) != 3 {
				fmt.Println("usage: click X Y")
				continue
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				fmt.Println("usage: click X Y")
				continue
			}
			if err := labeler.SelectCenter(x, y); err != nil {
				log.Error(log.Fields{"error": err.Error()}, "click ignored")
				continue
			}
			box, err := labeler.BoundingBox()
			if err != nil {
				log.Error(log.Fields{"error": err.Error()}, "box computation failed")
				continue
			}
			log.Info(log.Fields{
				"top_left":     fmt.Sprintf("(%g,%g)", box.TopLeft.X, box.TopLeft.Y),
				"bottom_right": fmt.Sprintf("(%g,%g)", box.BottomRight.X, box.BottomRight.Y),
			}, "center selected")

		case "save":
			path := ""
			if len(fields) == 2 {
				path = fields[1]
			} else if img := labeler.Image(); img != nil {
				path = utils.AnnotationPath(img.Path, cfg.Output.Dir)
			}
			if path == "" {
				log.Error(nil, "no image loaded")
				continue
			}
			if err := labeler.Export(path); err != nil {
				log.Error(log.Fields{"path": path, "error": err.Error()}, "save failed")
				continue
			}
			log.Info(log.Fields{"path": path}, "annotation saved")

		case "preview":
			path := ""
			if len(fields) == 2 {
				path = fields[1]
			} else if img := labeler.Image(); img != nil {
				path = utils.PreviewPath(img.Path, cfg.Output.Dir, cfg.Output.PreviewFormat)
			}
			if path == "" {
				log.Error(nil, "no image loaded")
				continue
			}
			if err := labeler.Preview(path); err != nil {
				log.Error(log.Fields{"path": path, "error": err.Error()}, "preview failed")
				continue
			}
			log.Info(log.Fields{"path": path}, "preview saved")

		case "quit", "exit":
			return

		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
}
