package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-wolf/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type savingStub struct{ stubGame }

func (g *savingStub) SaveState() ([]byte, error) { return nil, nil }
func (g *savingStub) LoadState([]byte) error     { return nil }

func TestRegisterCreateList(t *testing.T) {
	Register(GameInfo{ID: "zz_stub"}, func() Game { return &stubGame{id: "zz_stub"} })
	Register(GameInfo{ID: "aa_saving", Title: "Saving", Summary: "keeps state"},
		func() Game { return &savingStub{stubGame{id: "aa_saving"}} })

	if !Exists("zz_stub") {
		t.Fatal("Exists(zz_stub) = false after Register")
	}
	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q, expected zz_stub", g.ID())
	}

	list := List()
	if len(list) < 2 {
		t.Fatalf("List() returned %d games, expected at least 2", len(list))
	}
	stub, saving := list[len(list)-2], list[len(list)-1]
	if stub.ID != "zz_stub" || stub.Title != "Stub zz_stub" || stub.Saves {
		t.Errorf("List() stub = %+v, expected the probe title and no saves", stub)
	}
	if saving.ID != "aa_saving" || saving.Title != "Saving" || !saving.Saves {
		t.Errorf("List() saving = %+v, expected registration order and saves", saving)
	}

	info, ok := Lookup("aa_saving")
	if !ok || info.Summary != "keeps state" {
		t.Errorf("Lookup() = %+v, %v", info, ok)
	}
	if _, ok := Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}

	if _, err := Create("missing"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(missing) error = %v, expected ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz_dup"}, func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register(GameInfo{ID: "zz_dup"}, func() Game { return &stubGame{id: "zz_dup"} })
}
