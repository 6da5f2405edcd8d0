// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/pkg/slice"
)

func familyDataset() chronicle.Dataset {
	return chronicle.Dataset{
		People: []chronicle.Person{
			{ID: "childeric", BirthYear: 440, DeathYear: 481},
			{ID: "clovis", BirthYear: 466, DeathYear: 511, FatherID: "childeric", SpouseIDs: []string{"clotilde"}},
			{ID: "clotilde", BirthYear: 474, DeathYear: 545},
			{ID: "audofleda", BirthYear: 470, DeathYear: 526, SpouseIDs: []string{"clovis"}},
			{ID: "chlothar", BirthYear: 497, DeathYear: 561, FatherID: "clovis", MotherID: "clotilde"},
			{ID: "childebert", BirthYear: 496, DeathYear: 558, FatherID: "clovis", MotherID: "clotilde"},
			{ID: "theuderic", BirthYear: 485, DeathYear: 534, FatherID: "clovis", MotherID: "ghost"},
		},
	}
}

/*
TestIndex_FamilyOf checks parent resolution, reverse spouse lookup and child ordering.
*/
func TestIndex_FamilyOf(t *testing.T) {
	dataset := familyDataset()
	index := dataset.Index()

	relations, ok := index.FamilyOf(dataset.People, "clovis")
	require.True(t, ok)

	require.NotNil(t, relations.Father)
	assert.Equal(t, "childeric", relations.Father.ID)
	assert.Nil(t, relations.Mother)

	ids := func(people []chronicle.Person) []string {
		return slice.Map(people, func(p chronicle.Person) string { return p.ID })
	}
	assert.Equal(t, []string{"clotilde", "audofleda"}, ids(relations.Spouses))
	assert.Equal(t, []string{"theuderic", "childebert", "chlothar"}, ids(relations.Children))

	relations, ok = index.FamilyOf(dataset.People, "theuderic")
	require.True(t, ok)
	assert.Nil(t, relations.Mother, "dangling mother id is dropped")

	_, ok = index.FamilyOf(dataset.People, "nobody")
	assert.False(t, ok)
}

/*
TestSpouseIDsOf verifies that a one-sided marriage is visible from both sides exactly once.
*/
func TestSpouseIDsOf(t *testing.T) {
	dataset := familyDataset()
	index := dataset.Index()

	audofleda, _ := index.Person("audofleda")
	assert.Equal(t, []string{"clovis"}, chronicle.SpouseIDsOf(dataset.People, audofleda))

	clotilde, _ := index.Person("clotilde")
	assert.Equal(t, []string{"clovis"}, chronicle.SpouseIDsOf(dataset.People, clotilde))
}
