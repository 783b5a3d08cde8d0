package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sidekick/internal/calendar"
	"sidekick/internal/config"
	"sidekick/internal/csvimport"
	"sidekick/internal/encryption"
	"sidekick/internal/sidekick"
	"sidekick/internal/storage"
)

// ErrNoSuchItem is returned when a command names a record that does not exist.
var ErrNoSuchItem = errors.New("no such item")

// SidekickApp is the application layer between the CLI and the stores.
// It constructs all dependencies from config, owns the current Session and
// exposes the module operations the CLI runs.
type SidekickApp struct {
	cfg       *config.Config
	storage   sidekick.Storage
	encrypted *encryption.EncryptedStorage // nil when encryption is off
	logger    sidekick.Logger
	clock     sidekick.Clock
	idgen     sidekick.IDGenerator
	slices    *sidekick.Slices
	session   *Session
	op        *Operation
	logFile   *os.File
}

// Deps are the collaborators of a SidekickApp.
type Deps struct {
	Storage sidekick.Storage
	Logger  sidekick.Logger
	Clock   sidekick.Clock
	IDGen   sidekick.IDGenerator
}

// Options describe the command a SidekickApp is created for.
type Options struct {
	Operation string
	Params    []string
	// UserID overrides cfg.UserID when set.
	UserID string
	// Passphrase is asked for when encryption is enabled, before any
	// document is read.
	Passphrase func() (string, error)
}

// New wires a SidekickApp from ready-made dependencies and signs userID in.
func New(ctx context.Context, cfg *config.Config, deps Deps, userID string) *SidekickApp {
	if deps.Logger == nil {
		deps.Logger = sidekick.NewNopLogger()
	}
	if deps.Clock == nil {
		deps.Clock = sidekick.RealClock{}
	}
	if deps.IDGen == nil {
		deps.IDGen = sidekick.UUIDGenerator{}
	}
	a := &SidekickApp{
		cfg:     cfg,
		storage: deps.Storage,
		logger:  deps.Logger,
		clock:   deps.Clock,
		idgen:   deps.IDGen,
		slices:  sidekick.NewSlices(sidekick.NewSliceStore(deps.Storage, deps.Logger)),
		op:      NewOperation("", deps.Clock.Now()),
	}
	a.SignIn(ctx, userID)
	return a
}

// NewSidekickApp creates a fully wired SidekickApp from the given config.
// The caller must call Close when done.
func NewSidekickApp(ctx context.Context, cfg *config.Config, opts Options) (*SidekickApp, error) {
	backend, err := storage.NewStorageFromConfig(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("creating storage: %w", err)
	}
	closeBackend := func() {
		if c, ok := backend.(io.Closer); ok {
			c.Close()
		}
	}

	var store sidekick.Storage = backend
	var encrypted *encryption.EncryptedStorage
	if cfg.Encryption.Enabled {
		enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
		if err != nil {
			closeBackend()
			return nil, fmt.Errorf("creating encryptor: %w", err)
		}
		encrypted = encryption.NewEncryptedStorage(backend, enc)
		store = encrypted
	}

	if err := store.ValidateSetup(ctx); err != nil {
		closeBackend()
		return nil, fmt.Errorf("storage not usable: %w", err)
	}

	if encrypted != nil {
		if opts.Passphrase == nil {
			closeBackend()
			return nil, fmt.Errorf("encryption is enabled but no passphrase source was given")
		}
		pass, err := opts.Passphrase()
		if err != nil {
			closeBackend()
			return nil, fmt.Errorf("reading passphrase: %w", err)
		}
		if err := encrypted.Unlock(pass); err != nil {
			closeBackend()
			return nil, fmt.Errorf("unlocking storage: %w", err)
		}
	}

	sessionID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, sessionID, cfg.LogLevel)
	if err != nil {
		closeBackend()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	userID := opts.UserID
	if userID == "" {
		userID = cfg.UserID
	}

	a := New(ctx, cfg, Deps{
		Storage: store,
		Logger:  &slogAdapter{l: logger},
		Clock:   sidekick.RealClock{},
		IDGen:   sidekick.UUIDGenerator{},
	}, userID)
	a.encrypted = encrypted
	a.logFile = logFile
	a.op = NewOperation(opts.Operation, a.clock.Now(), opts.Params...)
	a.logger.Info("operation started", "operation", a.op.Name, "params", a.op.Parameters, "storage", cfg.Storage.Type)
	return a, nil
}

// Fail marks the running operation as failed; Close logs it.
func (a *SidekickApp) Fail() { a.op.Fail() }

// Now is the app clock's current time.
func (a *SidekickApp) Now() time.Time { return a.clock.Now() }

// Document returns a copy of the current user's document.
func (a *SidekickApp) Document() sidekick.Document {
	return a.session.Store.Get()
}

// Durable reports whether the current document reached storage.
func (a *SidekickApp) Durable() bool {
	return a.session.Store.Durable()
}

func (a *SidekickApp) update(ctx context.Context, fn func(sidekick.Document) sidekick.Document) sidekick.Document {
	return a.session.Store.Update(ctx, fn)
}

// Tasks

// AddTask adds a task with a fresh id. An empty title is rejected.
func (a *SidekickApp) AddTask(ctx context.Context, title string) (sidekick.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return sidekick.Todo{}, fmt.Errorf("task title is required")
	}
	id := sidekick.NewEntityID(a.idgen, "t")
	doc := a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTask(d, id, title)
	})
	task, _ := sidekick.FindTask(doc, id)
	return task, nil
}

// Tasks returns the current user's tasks.
func (a *SidekickApp) Tasks() []sidekick.Todo {
	return a.Document().Tasks
}

// ToggleTask flips the task whose id is, or uniquely starts with, id.
func (a *SidekickApp) ToggleTask(ctx context.Context, id string) (sidekick.Todo, error) {
	task, ok := sidekick.FindTask(a.Document(), id)
	if !ok {
		return sidekick.Todo{}, fmt.Errorf("task %q: %w", id, ErrNoSuchItem)
	}
	doc := a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.ToggleTask(d, task.ID)
	})
	task, _ = sidekick.FindTask(doc, task.ID)
	return task, nil
}

// RemoveTask deletes the task whose id is, or uniquely starts with, id.
func (a *SidekickApp) RemoveTask(ctx context.Context, id string) error {
	task, ok := sidekick.FindTask(a.Document(), id)
	if !ok {
		return fmt.Errorf("task %q: %w", id, ErrNoSuchItem)
	}
	a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.RemoveTask(d, task.ID)
	})
	return nil
}

// Catalog

// AddTrack adds t to the catalog with a fresh id.
func (a *SidekickApp) AddTrack(ctx context.Context, t sidekick.Track) (sidekick.Track, error) {
	if strings.TrimSpace(t.Title) == "" {
		return sidekick.Track{}, fmt.Errorf("track title is required")
	}
	t.ID = sidekick.NewEntityID(a.idgen, "track")
	doc := a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddTrack(d, t)
	})
	return doc.Phono.Tracks[len(doc.Phono.Tracks)-1], nil
}

func (a *SidekickApp) Tracks() []sidekick.Track {
	return a.Document().Phono.Tracks
}

// EditTrack applies fn to the track with id and returns the stored result.
func (a *SidekickApp) EditTrack(ctx context.Context, id string, fn func(sidekick.Track) sidekick.Track) (sidekick.Track, error) {
	if _, ok := findTrack(a.Document(), id); !ok {
		return sidekick.Track{}, fmt.Errorf("track %q: %w", id, ErrNoSuchItem)
	}
	doc := a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.UpdateTrack(d, id, fn)
	})
	t, _ := findTrack(doc, id)
	return t, nil
}

// RemoveTrack deletes a track. Albums listing it keep the reference.
func (a *SidekickApp) RemoveTrack(ctx context.Context, id string) error {
	if _, ok := findTrack(a.Document(), id); !ok {
		return fmt.Errorf("track %q: %w", id, ErrNoSuchItem)
	}
	a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.RemoveTrack(d, id)
	})
	return nil
}

// AddAlbum adds al to the catalog with a fresh id.
func (a *SidekickApp) AddAlbum(ctx context.Context, al sidekick.Album) (sidekick.Album, error) {
	if strings.TrimSpace(al.Title) == "" {
		return sidekick.Album{}, fmt.Errorf("album title is required")
	}
	al.ID = sidekick.NewEntityID(a.idgen, "album")
	doc := a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.AddAlbum(d, al)
	})
	return doc.Phono.Albums[len(doc.Phono.Albums)-1], nil
}

func (a *SidekickApp) Albums() []sidekick.Album {
	return a.Document().Phono.Albums
}

func (a *SidekickApp) RemoveAlbum(ctx context.Context, id string) error {
	if _, ok := sidekick.FindAlbum(a.Document(), id); !ok {
		return fmt.Errorf("album %q: %w", id, ErrNoSuchItem)
	}
	a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.RemoveAlbum(d, id)
	})
	return nil
}

// ToggleAlbumTrack adds or removes a catalog track from an album. Both must
// exist.
func (a *SidekickApp) ToggleAlbumTrack(ctx context.Context, albumID, trackID string) (sidekick.Album, error) {
	doc := a.Document()
	if _, ok := sidekick.FindAlbum(doc, albumID); !ok {
		return sidekick.Album{}, fmt.Errorf("album %q: %w", albumID, ErrNoSuchItem)
	}
	if _, ok := findTrack(doc, trackID); !ok {
		return sidekick.Album{}, fmt.Errorf("track %q: %w", trackID, ErrNoSuchItem)
	}
	doc = a.update(ctx, func(d sidekick.Document) sidekick.Document {
		return sidekick.ToggleAlbumTrack(d, albumID, trackID)
	})
	album, _ := sidekick.FindAlbum(doc, albumID)
	return album, nil
}

// AlbumTracks resolves the tracks of an album, skipping removed ones.
func (a *SidekickApp) AlbumTracks(albumID string) ([]sidekick.Track, error) {
	doc := a.Document()
	album, ok := sidekick.FindAlbum(doc, albumID)
	if !ok {
		return nil, fmt.Errorf("album %q: %w", albumID, ErrNoSuchItem)
	}
	return sidekick.ResolveAlbumTracks(doc, album), nil
}

func findTrack(doc sidekick.Document, id string) (sidekick.Track, bool) {
	for _, t := range doc.Phono.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return sidekick.Track{}, false
}

// Calendar

// CalendarEvents builds the calendar from the live, income and phono
// modules, keeping only the given sectors (all when none are given).
func (a *SidekickApp) CalendarEvents(ctx context.Context, sectors ...calendar.Sector) []calendar.Event {
	src := calendar.Sources{
		Representations: a.slices.Representations.Get(ctx),
		Rehearsals:      a.slices.Rehearsals.Get(ctx),
		Invoices:        a.slices.Invoices.Get(ctx),
		Sessions:        a.slices.StudioSessions.Get(ctx),
	}
	return calendar.Filter(calendar.Build(src, a.clock.Now()), sectors...)
}

// Royalties

// ImportRoyaltiesFile reads a CSV statement from path and stores it as the
// latest import of distributor.
func (a *SidekickApp) ImportRoyaltiesFile(ctx context.Context, distributor csvimport.Distributor, path string) (csvimport.RoyaltyImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return csvimport.RoyaltyImport{}, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return csvimport.RoyaltyImport{}, fmt.Errorf("reading statement: %w", err)
	}
	imp, err := sidekick.ImportRoyalties(ctx, a.slices, distributor, filepath.Base(path), string(data), a.clock.Now())
	if err != nil {
		return imp, err
	}
	a.logger.Info("royalties imported", "distributor", distributor, "file", imp.FileName, "rows", len(imp.Rows))
	return imp, nil
}

func (a *SidekickApp) RoyaltyImports(ctx context.Context) sidekick.RoyaltyImports {
	return a.slices.RoyaltiesImports.Get(ctx)
}

// Invoices

// AddInvoice stores a new invoice, numbering it when no number is given.
func (a *SidekickApp) AddInvoice(ctx context.Context, inv sidekick.Invoice) (sidekick.Invoice, error) {
	var stored sidekick.Invoice
	var addErr error
	_, err := a.slices.Invoices.Update(ctx, func(all []sidekick.Invoice) []sidekick.Invoice {
		var next []sidekick.Invoice
		next, stored, addErr = sidekick.AddInvoice(all, inv, a.clock.Now())
		return next
	})
	if addErr != nil {
		return sidekick.Invoice{}, addErr
	}
	return stored, err
}

func (a *SidekickApp) Invoices(ctx context.Context) []sidekick.Invoice {
	return a.slices.Invoices.Get(ctx)
}

func (a *SidekickApp) MarkInvoicePaid(ctx context.Context, id int64) error {
	found := false
	_, err := a.slices.Invoices.Update(ctx, func(all []sidekick.Invoice) []sidekick.Invoice {
		for _, inv := range all {
			if inv.ID == id {
				found = true
			}
		}
		return sidekick.MarkInvoicePaid(all, id)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("invoice %d: %w", id, ErrNoSuchItem)
	}
	return nil
}

// Contacts and prospection

func (a *SidekickApp) Contacts(ctx context.Context) []sidekick.ContactRecord {
	return a.slices.Contacts.Get(ctx)
}

// AddProspect records a venue prospection. A named contact person who is
// not in the contacts yet is added to them too. The two lists are updated
// one after the other; a contacts failure leaves the stored entry in place.
func (a *SidekickApp) AddProspect(ctx context.Context, entry sidekick.ProspectionEntry) (sidekick.ProspectionEntry, error) {
	var stored sidekick.ProspectionEntry
	_, err := a.slices.Prospection.Update(ctx, func(all []sidekick.ProspectionEntry) []sidekick.ProspectionEntry {
		var next []sidekick.ProspectionEntry
		next, stored = sidekick.AddProspectionEntry(all, entry)
		return next
	})
	if err != nil {
		return sidekick.ProspectionEntry{}, err
	}
	var added bool
	_, err = a.slices.Contacts.Update(ctx, func(all []sidekick.ContactRecord) []sidekick.ContactRecord {
		var next []sidekick.ContactRecord
		next, added = sidekick.AddVenueContact(all, stored)
		return next
	})
	if err != nil {
		return stored, fmt.Errorf("adding venue contact: %w", err)
	}
	if added {
		a.logger.Info("contact created from prospection", "name", stored.Contact)
	}
	return stored, nil
}

func (a *SidekickApp) Prospects(ctx context.Context) []sidekick.ProspectionEntry {
	return a.slices.Prospection.Get(ctx)
}

// Reset wipes the current user's document and every module key.
func (a *SidekickApp) Reset(ctx context.Context) error {
	var errs []error
	if err := a.session.Store.Reset(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, key := range sidekick.SliceKeys {
		if err := a.slices.Store().Remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if err := a.verifyWiped(ctx); err != nil {
		return err
	}
	a.logger.Info("all data reset", "key", a.session.Key())
	return nil
}

// verifyWiped lists the backend keys and reports any key Reset should have
// removed. Backends that cannot list keys are logged and trusted.
func (a *SidekickApp) verifyWiped(ctx context.Context) error {
	keys, err := a.storage.Keys(ctx)
	if err != nil {
		a.logger.Warn("could not list keys to verify reset", "error", err)
		return nil
	}
	wiped := map[string]bool{a.session.Key(): true}
	for _, k := range sidekick.SliceKeys {
		wiped[k] = true
	}
	var left []string
	for _, k := range keys {
		if wiped[k] {
			left = append(left, k)
		}
	}
	if len(left) > 0 {
		return fmt.Errorf("reset left %s in storage", strings.Join(left, ", "))
	}
	return nil
}

// Close logs the end of the operation and releases the storage and log file.
func (a *SidekickApp) Close() error {
	var firstErr error

	a.logger.Info("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"elapsed", a.op.Elapsed(a.clock.Now()).Round(time.Millisecond),
		"durable", a.session.Store.Durable())

	if c, ok := a.storage.(io.Closer); ok {
		if err := c.Close(); err != nil {
			firstErr = fmt.Errorf("closing storage: %w", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

// SetupKeys generates the encryption key pair described by cfg.
func SetupKeys(cfg *config.Config, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("generating keys: %w", err)
	}
	return nil
}
