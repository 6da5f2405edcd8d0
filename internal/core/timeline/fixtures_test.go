// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package timeline_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/core/timeline"
	"github.com/taibuivan/reignline/internal/layout"
	"github.com/taibuivan/reignline/pkg/pointer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testOptions = timeline.Options{MinYear: 450, MaxYear: 650, Zoom: 10, CacheTTL: time.Minute}

// franksDataset is a three-person family anchored on one Frankish kingdom band.
func franksDataset() chronicle.Dataset {
	return chronicle.Dataset{
		Groups: []chronicle.HistoricalGroup{{ID: "g1", Name: "History of France"}},
		Dynasties: []chronicle.Dynasty{
			{ID: "merovingian", Name: "Merovingian", Color: "#10b981"},
		},
		Entities: []chronicle.PoliticalEntity{{
			ID:   "franks",
			Name: "Kingdom of the Franks",
			Periods: []chronicle.EntityPeriod{{
				ID: "kf", StartYear: 481, EndYear: 600, Color: "#059669",
				Contexts: []chronicle.EntityContextRole{{GroupID: "g1", Role: chronicle.RoleNucleus, HeightIndex: 0, RowSpan: 1}},
			}},
		}},
		People: []chronicle.Person{
			{
				ID: "clovis", OfficialName: "Clovis I", RealName: "Chlodovech", DynastyID: "merovingian",
				BirthYear: 466, DeathYear: 511, Role: chronicle.RoleNucleus,
				Titles: []chronicle.Title{{
					ID: "t1", Name: "King of the Franks", EntityID: "franks",
					Rank: pointer.To(chronicle.RankKing), Role: chronicle.RoleNucleus,
					Periods: []chronicle.TitlePeriod{{StartYear: 481, EndYear: 511}},
				}},
			},
			{
				ID: "clotilde", OfficialName: "Saint Clotilde", DynastyID: "merovingian",
				BirthYear: 474, DeathYear: 545, Role: chronicle.RoleNucleus, SpouseIDs: []string{"clovis"},
				VerticalPosition: 1,
			},
			{
				ID: "chlothar", OfficialName: "Chlothar I", DynastyID: "merovingian",
				BirthYear: 497, DeathYear: 561, Role: chronicle.RoleSecondary,
				FatherID: "clovis", MotherID: "clotilde", VerticalPosition: 2,
			},
		},
	}
}

// # Fakes

type fakeRecorder struct {
	layouts  int
	commands []string
	hits     int
	misses   int
	loads    int
}

func (f *fakeRecorder) ObserveLayout(time.Duration, int, int, error) { f.layouts++ }
func (f *fakeRecorder) ObserveCommand(command string, _ error)       { f.commands = append(f.commands, command) }
func (f *fakeRecorder) ObserveCache(_ string, hit bool) {
	if hit {
		f.hits++
	} else {
		f.misses++
	}
}
func (f *fakeRecorder) ObserveDataset(string, time.Duration, map[string]int) { f.loads++ }

type failingRepository struct{ err error }

func (f failingRepository) Load(context.Context) (chronicle.Dataset, error) {
	return chronicle.Dataset{}, f.err
}
func (f failingRepository) Ping(context.Context) error { return f.err }
func (f failingRepository) Source() string             { return "failing" }

type brokenCache struct{ sets int }

func (b *brokenCache) Get(context.Context, string) (*layout.Scene, bool, error) {
	return nil, false, io.ErrUnexpectedEOF
}
func (b *brokenCache) Set(context.Context, string, *layout.Scene, time.Duration) error {
	b.sets++
	return io.ErrUnexpectedEOF
}
func (b *brokenCache) Ping(context.Context) error { return io.ErrUnexpectedEOF }
func (b *brokenCache) Name() string               { return "broken" }

func newService(recorder timeline.Recorder) (*timeline.Service, *timeline.MemoryRepository, *timeline.MemorySceneCache) {
	repo := timeline.NewMemoryRepository(franksDataset())
	cache := timeline.NewMemorySceneCache(0)
	return timeline.NewService(repo, cache, recorder, testOptions, discardLogger()), repo, cache
}

func activeG1() timeline.ViewRequest {
	return timeline.ViewRequest{ActiveContextIDs: []string{"g1"}}
}
