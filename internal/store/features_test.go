package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/nakachan-ing/expert-notes/internal/model"
)

// featureContext holds state shared across step definitions within a scenario.
type featureContext struct {
	mirror  *memMirror
	store   *NoteStore
	lastErr error
}

func (fc *featureContext) reset() {
	fc.mirror = newMemMirror()
	fc.store = NewNoteStore(fc.mirror, WithLogger(slog.New(slog.DiscardHandler)))
	fc.lastErr = nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	fc := &featureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty note store$`, fc.anEmptyNoteStore)
	ctx.Step(`^the mirror holds "([^"]*)"$`, fc.theMirrorHolds)
	ctx.Step(`^the store is loaded$`, fc.theStoreIsLoaded)
	ctx.Step(`^I create a note "([^"]*)"$`, fc.iCreateANote)
	ctx.Step(`^I delete the note "([^"]*)"$`, fc.iDeleteTheNote)
	ctx.Step(`^I delete an unknown note$`, fc.iDeleteAnUnknownNote)
	ctx.Step(`^the notes are "([^"]*)"$`, fc.theNotesAre)
	ctx.Step(`^searching "([^"]*)" finds "([^"]*)"$`, fc.searchingFinds)
	ctx.Step(`^after reloading the notes are "([^"]*)"$`, fc.afterReloadingTheNotesAre)
	ctx.Step(`^the note is rejected as empty$`, fc.theNoteIsRejectedAsEmpty)
	ctx.Step(`^the store has (\d+) notes$`, fc.theStoreHasNotes)
	ctx.Step(`^the mirror was written (\d+) times?$`, fc.theMirrorWasWritten)
}

func (fc *featureContext) anEmptyNoteStore() error {
	fc.store.Load()
	return nil
}

func (fc *featureContext) theMirrorHolds(data string) error {
	fc.mirror.data[DefaultStorageKey] = []byte(data)
	return nil
}

func (fc *featureContext) theStoreIsLoaded() error {
	fc.store.Load()
	return nil
}

func (fc *featureContext) iCreateANote(content string) error {
	_, fc.lastErr = fc.store.Create(content)
	return nil
}

func (fc *featureContext) iDeleteTheNote(content string) error {
	for _, n := range fc.store.All() {
		if n.Content == content {
			ok, err := fc.store.Delete(n.ID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("note %q was not deleted", content)
			}
			return nil
		}
	}
	return fmt.Errorf("no note %q", content)
}

func (fc *featureContext) iDeleteAnUnknownNote() error {
	ok, err := fc.store.Delete("00000000-0000-0000-0000-000000000000")
	if err != nil {
		return err
	}
	if ok {
		return errors.New("unknown note reported as deleted")
	}
	return nil
}

func (fc *featureContext) theNotesAre(list string) error {
	return sameContents(fc.store.All(), list)
}

func (fc *featureContext) searchingFinds(query, list string) error {
	return sameContents(fc.store.Search(query), list)
}

func (fc *featureContext) afterReloadingTheNotesAre(list string) error {
	reloaded := NewNoteStore(fc.mirror, WithLogger(slog.New(slog.DiscardHandler)))
	return sameContents(reloaded.Load(), list)
}

func (fc *featureContext) theNoteIsRejectedAsEmpty() error {
	if !errors.Is(fc.lastErr, ErrEmptyContent) {
		return fmt.Errorf("expected ErrEmptyContent, got %v", fc.lastErr)
	}
	return nil
}

func (fc *featureContext) theStoreHasNotes(n int) error {
	if got := fc.store.Len(); got != n {
		return fmt.Errorf("expected %d notes, got %d", n, got)
	}
	return nil
}

func (fc *featureContext) theMirrorWasWritten(n int) error {
	if got := fc.mirror.writeCount(); got != n {
		return fmt.Errorf("expected %d writes, got %d", n, got)
	}
	return nil
}

func sameContents(notes []model.Note, list string) error {
	want := strings.Split(list, ", ")
	got := contents(notes)
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		return fmt.Errorf("expected notes %q, got %q", want, got)
	}
	return nil
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
