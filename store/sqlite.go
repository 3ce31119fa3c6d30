// Package store reads course outline from a database which uses LMS table
// layout.
package store

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"flexsections/common"
	"flexsections/course"
)

var ErrNoCourse = errors.New("course does not exist")

// table prefixes and module names end up in sql text
var identRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

const (
	contextLevelCourse = 50
	formatName         = "flexsections"
	// value of "collapsed" format option for collapsed sections
	collapsedValue = "1"
)

// Signature is the header every SQLite database file starts with.
var Signature = []byte("SQLite format 3\x00")

type loader struct {
	conn   *sqlite.Conn
	prefix string
	log    *zap.Logger
}

func (l *loader) table(name string) string {
	return l.prefix + name
}

// Load reads outline of course courseID from SQLite database at path. Tables
// are expected to be named with prefix, "mdl_" for default LMS installation.
// Resulting snapshot is validated.
func Load(ctx context.Context, path string, courseID int64, prefix string, log *zap.Logger) (snap *course.Snapshot, err error) {
	if len(prefix) > 0 && !identRe.MatchString(strings.TrimSuffix(prefix, "_")) {
		return nil, fmt.Errorf("invalid table prefix %q", prefix)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("unable to open database %s: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, conn.Close())
	}()
	conn.SetInterrupt(ctx.Done())

	l := &loader{conn: conn, prefix: prefix, log: log.Named("store")}

	snap = &course.Snapshot{}
	if err := l.loadCourse(courseID, &snap.Course); err != nil {
		return nil, err
	}
	ids, err := l.loadSections(snap)
	if err != nil {
		return nil, err
	}
	if err := l.loadFormatOptions(snap, ids); err != nil {
		return nil, err
	}
	if err := l.loadModules(snap, ids); err != nil {
		return nil, err
	}

	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("outline of course %d is broken: %w", courseID, err)
	}
	l.log.Debug("Course loaded",
		zap.Int64("course", courseID),
		zap.Int("sections", len(snap.Sections)),
		zap.Int("modules", len(snap.Modules)))
	return snap, nil
}

func (l *loader) loadCourse(id int64, c *course.Course) error {
	found := false
	err := sqlitex.Execute(l.conn, `SELECT id, shortname, fullname, marker FROM `+l.table("course")+` WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				c.ID = stmt.ColumnInt64(0)
				c.ShortName = stmt.ColumnText(1)
				c.FullName = stmt.ColumnText(2)
				c.Marker = stmt.ColumnInt(3)
				found = true
				return nil
			}})
	if err != nil {
		return fmt.Errorf("read course: %w", err)
	}
	if !found {
		return fmt.Errorf("course %d: %w", id, ErrNoCourse)
	}

	err = sqlitex.Execute(l.conn, `SELECT id FROM `+l.table("context")+` WHERE contextlevel = ? AND instanceid = ?`,
		&sqlitex.ExecOptions{
			Args: []any{contextLevelCourse, id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				c.ContextID = stmt.ColumnInt64(0)
				return nil
			}})
	if err != nil {
		return fmt.Errorf("read course context: %w", err)
	}
	if c.ContextID == 0 {
		l.log.Warn("Course has no context, file links in summaries will be broken", zap.Int64("course", id))
	}
	return nil
}

// summaryFormat maps LMS text format constants.
func summaryFormat(v int64) *common.SummaryFormat {
	var f common.SummaryFormat
	switch v {
	case 0, 1:
		f = common.SummaryFormatHtml
	case 2:
		f = common.SummaryFormatPlain
	case 4:
		f = common.SummaryFormatMarkdown
	default:
		return nil
	}
	return &f
}

// sectionIDs maps database section id to position in snapshot.
type sectionIDs map[int64]int

func (l *loader) loadSections(snap *course.Snapshot) (sectionIDs, error) {
	ids := make(sectionIDs)
	err := sqlitex.Execute(l.conn,
		`SELECT id, section, name, summary, summaryformat, visible FROM `+l.table("course_sections")+` WHERE course = ? ORDER BY section`,
		&sqlitex.ExecOptions{
			Args: []any{snap.Course.ID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				visible := stmt.ColumnInt(5) != 0
				rec := course.SectionRecord{
					ID:            stmt.ColumnInt64(0),
					Number:        stmt.ColumnInt(1),
					Name:          stmt.ColumnText(2),
					Summary:       stmt.ColumnText(3),
					SummaryFormat: summaryFormat(stmt.ColumnInt64(4)),
					Visible:       &visible,
				}
				ids[rec.ID] = len(snap.Sections)
				snap.Sections = append(snap.Sections, rec)
				return nil
			}})
	if err != nil {
		return nil, fmt.Errorf("read course sections: %w", err)
	}
	return ids, nil
}

func (l *loader) loadFormatOptions(snap *course.Snapshot, ids sectionIDs) error {
	err := sqlitex.Execute(l.conn,
		`SELECT sectionid, name, value FROM `+l.table("course_format_options")+` WHERE courseid = ? AND format = ? AND sectionid <> 0`,
		&sqlitex.ExecOptions{
			Args: []any{snap.Course.ID, formatName},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				idx, ok := ids[stmt.ColumnInt64(0)]
				if !ok {
					return nil
				}
				rec := &snap.Sections[idx]
				name, value := stmt.ColumnText(1), stmt.ColumnText(2)
				switch name {
				case "parent":
					parent, err := strconv.Atoi(value)
					if err != nil {
						return fmt.Errorf("section %d has bad parent %q: %w", rec.Number, value, err)
					}
					rec.Parent = parent
				case "collapsed":
					if value == collapsedValue {
						rec.State = common.SectionStateCollapsed
					} else {
						rec.State = common.SectionStateExpanded
					}
				}
				return nil
			}})
	if err != nil {
		return fmt.Errorf("read format options: %w", err)
	}
	return nil
}

// sequence returns position of every module in its section as stored in
// section "sequence" column.
func (l *loader) sequence(courseID int64) (map[int64]int, error) {
	pos := make(map[int64]int)
	err := sqlitex.Execute(l.conn, `SELECT sequence FROM `+l.table("course_sections")+` WHERE course = ?`,
		&sqlitex.ExecOptions{
			Args: []any{courseID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				for i, field := range strings.Split(stmt.ColumnText(0), ",") {
					if id, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64); err == nil {
						pos[id] = i
					}
				}
				return nil
			}})
	return pos, err
}

func (l *loader) loadModules(snap *course.Snapshot, ids sectionIDs) error {
	pos, err := l.sequence(snap.Course.ID)
	if err != nil {
		return fmt.Errorf("read section sequences: %w", err)
	}

	type row struct {
		rec      course.ModuleRecord
		instance int64
	}
	var rows []row
	err = sqlitex.Execute(l.conn,
		`SELECT cm.id, m.name, cm.instance, cm.section, cm.visible FROM `+l.table("course_modules")+` cm JOIN `+
			l.table("modules")+` m ON m.id = cm.module WHERE cm.course = ?`,
		&sqlitex.ExecOptions{
			Args: []any{snap.Course.ID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				idx, ok := ids[stmt.ColumnInt64(3)]
				if !ok {
					l.log.Warn("Module is placed in unknown section, skipping", zap.Int64("module", stmt.ColumnInt64(0)))
					return nil
				}
				visible := stmt.ColumnInt(4) != 0
				rows = append(rows, row{
					rec: course.ModuleRecord{
						ID:      stmt.ColumnInt64(0),
						ModName: stmt.ColumnText(1),
						Section: snap.Sections[idx].Number,
						Visible: &visible,
					},
					instance: stmt.ColumnInt64(2),
				})
				return nil
			}})
	if err != nil {
		return fmt.Errorf("read course modules: %w", err)
	}

	slices.SortStableFunc(rows, func(a, b row) int {
		if c := cmp.Compare(a.rec.Section, b.rec.Section); c != 0 {
			return c
		}
		return cmp.Compare(pos[a.rec.ID], pos[b.rec.ID])
	})

	for _, r := range rows {
		r.rec.Name = l.instanceName(r.rec.ModName, r.instance)
		snap.Modules = append(snap.Modules, r.rec)
	}
	return nil
}

// instanceName looks up module instance name in the module own table, module
// name is used when lookup fails.
func (l *loader) instanceName(modname string, instance int64) string {
	if !identRe.MatchString(modname) {
		l.log.Warn("Unexpected module name", zap.String("modname", modname))
		return modname
	}
	name := ""
	err := sqlitex.Execute(l.conn, `SELECT name FROM `+l.table(modname)+` WHERE id = ?`,
		&sqlitex.ExecOptions{
			Args: []any{instance},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				name = stmt.ColumnText(0)
				return nil
			}})
	if err != nil || len(name) == 0 {
		l.log.Debug("Unable to get module instance name", zap.String("modname", modname), zap.Int64("instance", instance), zap.Error(err))
		return modname
	}
	return name
}
