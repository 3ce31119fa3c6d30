// Package generate implements render command: loads course outline from the
// source and writes html to destination.
package generate

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"flexsections/archive"
	"flexsections/course"
	"flexsections/css"
	"flexsections/render"
	"flexsections/state"
	"flexsections/store"
)

//go:embed default.css
var defaultStylesheet []byte

// stylesheet file name, written next to generated page
const stylesheetName = "flexsections.css"

var snapshotExts = []string{".yaml", ".yml"}

var errExists = errors.New("output file already exists")

type options struct {
	courseID int64
	section  int
	returnTo int
	moving   int
	prefix   string
	fragment bool
	viewer   course.Viewer
}

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Stylesheet = defaultStylesheet
	if env.Cfg.Render.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Render.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Render.StylesheetPath, err)
		}
		env.Stylesheet = data
		checkStylesheet(data, env.Cfg.Render.StylesheetPath, log)
		if err := env.Rpt.StoreCopy("stylesheet/"+filepath.Base(env.Cfg.Render.StylesheetPath), env.Cfg.Render.StylesheetPath); err != nil {
			log.Warn("Unable to store stylesheet in the report", zap.Error(err))
		}
	}
	env.Overwrite = cmd.Bool("overwrite")

	opts := options{
		courseID: int64(cmd.Int("course")),
		section:  int(cmd.Int("section")),
		moving:   int(cmd.Int("moving")),
		prefix:   cmd.String("prefix"),
		fragment: cmd.Bool("fragment"),
		viewer: course.Viewer{
			Editing:            cmd.Bool("editing"),
			ViewHiddenSections: cmd.Bool("viewhidden"),
		},
	}
	opts.returnTo = opts.section
	if cmd.IsSet("return") {
		opts.returnTo = int(cmd.Int("return"))
	}
	if opts.moving != 0 && !opts.viewer.Editing {
		log.Warn("Moving section requires editing mode, ignoring", zap.Int("moving", opts.moving))
		opts.moving = 0
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Int("section", opts.section))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, opts, env, log)
}

// checkStylesheet reports problems which would make outline look broken.
func checkStylesheet(data []byte, source string, log *zap.Logger) {
	sheet := css.NewParser(log).Parse(data, source)
	for _, w := range sheet.Warnings {
		log.Warn("Stylesheet parsing problem", zap.String("source", source), zap.String("problem", w))
	}
	if missing := sheet.Missing(css.OutlineClasses); len(missing) > 0 {
		log.Warn("Stylesheet does not style some outline classes", zap.String("source", source), zap.Strings("classes", missing))
	}
	if refs := sheet.RelativeRefs(); len(refs) > 0 {
		log.Warn("Stylesheet references relative resources, they are not copied to destination", zap.String("source", source), zap.Strings("refs", refs))
	}
}

// isDatabase reports whether file looks like SQLite database.
func isDatabase(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(store.Signature))
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(header, store.Signature), nil
}

func loadSource(ctx context.Context, src string, opts options, log *zap.Logger) (*course.Snapshot, error) {
	switch strings.ToLower(filepath.Ext(src)) {
	case ".yaml", ".yml":
		return course.LoadSnapshotFile(src)
	case ".zip":
		return loadArchive(src, log)
	}

	db, err := isDatabase(src)
	if err != nil {
		return nil, fmt.Errorf("unable to check source type: %w", err)
	}
	if !db {
		return nil, fmt.Errorf("input was not recognized as course snapshot or database (%s)", src)
	}
	if opts.courseID == 0 {
		return nil, errors.New("course id must be specified when reading from database")
	}
	return store.Load(ctx, src, opts.courseID, opts.prefix, log)
}

// loadArchive reads first course snapshot found in zip archive, remaining
// entries are not looked at.
func loadArchive(src string, log *zap.Logger) (snap *course.Snapshot, err error) {
	var name string
	err = archive.Walk(src, snapshotExts, func(entry string, r io.Reader) error {
		loaded, err := course.LoadSnapshot(r)
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", entry, err)
		}
		name, snap = entry, loaded
		return archive.SkipRest
	})
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, fmt.Errorf("no course snapshot found in archive %s", src)
	}
	log.Debug("Course snapshot loaded from archive", zap.String("archive", src), zap.String("entry", name))
	return snap, nil
}

// outputName derives file name from course short name and section.
func outputName(c *course.Course, opts options) string {
	name := slug.Make(c.ShortName)
	if len(name) == 0 {
		name = fmt.Sprintf("course-%d", c.ID)
	}
	if opts.section != 0 {
		name += fmt.Sprintf("-section-%d", opts.section)
	}
	if opts.fragment {
		name += "-fragment"
	}
	return name + ".html"
}

func writeFile(path string, data []byte, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %s", errExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func process(ctx context.Context, src, dst string, opts options, env *state.LocalEnv, log *zap.Logger) error {
	snap, err := loadSource(ctx, src, opts, log)
	if err != nil {
		return fmt.Errorf("unable to load course: %w", err)
	}
	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to store source in the report", zap.Error(err))
	}

	if opts.moving != 0 {
		snap.MovingSection = opts.moving
		if err := snap.Validate(); err != nil {
			return fmt.Errorf("unable to move section %d: %w", opts.moving, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	host, err := course.NewHost(snap, &env.Cfg.Host, env.Cfg.Render.WWWRoot, opts.viewer, log)
	if err != nil {
		return fmt.Errorf("unable to prepare course: %w", err)
	}
	if _, err := host.Section(opts.section); err != nil {
		return fmt.Errorf("unable to render: %w", err)
	}
	r, err := render.New(&env.Cfg.Render, log)
	if err != nil {
		return fmt.Errorf("unable to prepare renderer: %w", err)
	}

	var buf bytes.Buffer
	if opts.fragment {
		_, err = r.Section(host, opts.viewer, opts.section, opts.returnTo, 0).WriteTo(&buf)
	} else {
		_, err = r.Page(host, opts.viewer, opts.section, opts.returnTo, stylesheetName).WriteTo(&buf)
	}
	if err != nil {
		return fmt.Errorf("unable to produce html: %w", err)
	}

	out := filepath.Join(dst, outputName(host.Course(), opts))
	if err := writeFile(out, buf.Bytes(), env.Overwrite); err != nil {
		return err
	}
	log.Info("Outline written", zap.String("file", out), zap.Bool("fragment", opts.fragment))

	if !opts.fragment {
		css := filepath.Join(dst, stylesheetName)
		if err := writeFile(css, env.Stylesheet, env.Overwrite); errors.Is(err, errExists) {
			log.Debug("Keeping existing stylesheet", zap.String("file", css))
		} else if err != nil {
			log.Warn("Unable to write stylesheet", zap.String("file", css), zap.Error(err))
		}
	}

	env.Rpt.StoreData("outline.html", buf.Bytes())
	env.Rpt.StoreData("tree.txt", []byte(render.DumpTree(host, opts.section)))
	return nil
}
