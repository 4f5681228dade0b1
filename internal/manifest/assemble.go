package manifest

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/lessonindex/internal/content"
	"git.home.luguber.info/inful/lessonindex/internal/enrich"
	ferrors "git.home.luguber.info/inful/lessonindex/internal/foundation/errors"
	"git.home.luguber.info/inful/lessonindex/internal/logfields"
	"git.home.luguber.info/inful/lessonindex/internal/naming"
	"git.home.luguber.info/inful/lessonindex/internal/ordering"
)

// Warning reasons raised during assembly.
const (
	ReasonDuplicateID content.WarningReason = "duplicate_id"
	ReasonEmptyID     content.WarningReason = "empty_id"
	ReasonReservedID  content.WarningReason = "reserved_id"
)

// Identity holds the fixed fields stamped into every manifest.
type Identity struct {
	ModuleID    string
	Title       string
	Description string
	Language    string
	Direction   string
	Version     string
}

// Assembler turns a scanned listing into a Manifest.
type Assembler struct {
	identity  Identity
	rootTitle string
	failOnDup bool
	enricher  *enrich.Enricher
	now       func() time.Time
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithClock overrides the generatedAt source.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

// WithEnricher overrides the metadata enricher.
func WithEnricher(e *enrich.Enricher) AssemblerOption {
	return func(a *Assembler) { a.enricher = e }
}

// WithFailOnDuplicate makes duplicate IDs a fatal validation error instead
// of resolving them by suffixing.
func WithFailOnDuplicate(fail bool) AssemblerOption {
	return func(a *Assembler) { a.failOnDup = fail }
}

// NewAssembler creates an assembler for one module.
func NewAssembler(identity Identity, rootTitle string, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		identity:  identity,
		rootTitle: rootTitle,
		enricher:  enrich.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble builds the manifest. Directory sections keep listing order and
// empty ones are dropped; loose root files form the last section. The
// returned warnings cover ID rewrites only; scan warnings stay on the listing.
func (a *Assembler) Assemble(listing *content.Listing) (*Manifest, []content.Warning, error) {
	var warnings []content.Warning
	sections := make([]Section, 0, len(listing.Dirs)+1)

	for _, dir := range listing.Dirs {
		if len(dir.Files) == 0 {
			slog.Debug("Dropping empty section", logfields.Section(dir.RelPath))
			continue
		}
		title := naming.DeriveDirTitle(dir.Name)
		sections = append(sections, Section{
			Kind:  SectionDirectory,
			Dir:   dir.RelPath,
			ID:    naming.DeriveID(title),
			Title: title,
		})
	}

	ws, err := a.resolveSectionIDs(sections)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, ws...)

	// Items are built after section IDs settle so warnings name final sections.
	si := 0
	for _, dir := range listing.Dirs {
		if len(dir.Files) == 0 {
			continue
		}
		items, ws, err := a.buildItems(dir.RelPath, dir.Files)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, ws...)
		sections[si].Items = items
		si++
	}

	if len(listing.RootFiles) > 0 {
		items, ws, err := a.buildItems("", listing.RootFiles)
		if err != nil {
			return nil, nil, err
		}
		warnings = append(warnings, ws...)
		sections = append(sections, Section{
			Kind:  SectionRoot,
			ID:    RootSectionID,
			Title: a.rootTitle,
			Items: items,
		})
	}

	for i := range sections {
		sections[i].Order = i
	}

	m := &Manifest{
		ModuleID:    a.identity.ModuleID,
		Title:       a.identity.Title,
		Description: a.identity.Description,
		Language:    a.identity.Language,
		Direction:   a.identity.Direction,
		Version:     a.identity.Version,
		GeneratedAt: a.now().UTC().Truncate(time.Millisecond),
		Sections:    sections,
	}
	return m, warnings, nil
}

func (a *Assembler) resolveSectionIDs(sections []Section) ([]content.Warning, error) {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	changes := resolveIDs(ids, map[string]bool{RootSectionID: true}, fallbackSectionID)

	var warnings []content.Warning
	for _, c := range changes {
		s := &sections[c.index]
		reason := classify(c)
		// A reserved collision is suffixed under every policy.
		if a.failOnDup && reason == ReasonDuplicateID {
			return nil, duplicateError(s.Dir, c.original)
		}
		s.ID = ids[c.index]
		warnings = append(warnings, a.warnRewrite(s.Dir, reason, c))
	}
	return warnings, nil
}

func (a *Assembler) buildItems(section string, files []content.File) ([]Item, []content.Warning, error) {
	sorted := make([]content.File, len(files))
	copy(sorted, files)
	ordering.SortByPrefix(sorted, func(f content.File) string { return f.Name })

	items := make([]Item, len(sorted))
	ids := make([]string, len(sorted))
	for i, f := range sorted {
		title := naming.DeriveTitle(f.Name)
		md := a.enricher.Enrich(f)
		items[i] = Item{
			Title: title,
			Type:  f.Kind,
			Path:  f.RelPath,
			Order: i,
			Metadata: Metadata{
				Duration: md.DurationMinutes,
				Tags:     md.Tags,
			},
		}
		ids[i] = naming.DeriveID(title)
	}

	changes := resolveIDs(ids, nil, fallbackItemID)
	var warnings []content.Warning
	for _, c := range changes {
		reason := classify(c)
		if a.failOnDup && reason == ReasonDuplicateID {
			return nil, nil, duplicateError(items[c.index].Path, c.original)
		}
		warnings = append(warnings, a.warnRewrite(items[c.index].Path, reason, c))
	}
	for i := range items {
		items[i].ID = ids[i]
	}
	if section != "" {
		slog.Debug("Built section items", logfields.Section(section), logfields.Count(len(items)))
	}
	return items, warnings, nil
}

func classify(c idResolution) content.WarningReason {
	switch {
	case c.duplicate:
		return ReasonDuplicateID
	case c.reserved:
		return ReasonReservedID
	default:
		return ReasonEmptyID
	}
}

func (a *Assembler) warnRewrite(path string, reason content.WarningReason, c idResolution) content.Warning {
	slog.Warn("Rewrote derived ID",
		logfields.Path(path),
		logfields.Reason(string(reason)),
		slog.String("id", c.original),
		slog.String("resolved", c.resolved))
	return content.Warning{Path: path, Reason: reason}
}

func duplicateError(path, id string) error {
	return ferrors.ValidationError("duplicate ID within section").
		Fatal().
		WithPath(path).
		WithContext("id", id).
		Build()
}
