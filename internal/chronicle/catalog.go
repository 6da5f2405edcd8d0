// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle

import (
	"fmt"
	"strconv"
)

// TitleTemplate is a predefined office the editor offers when creating titles.
type TitleTemplate struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Rank  Rank   `json:"rank"`
}

// PredefinedTitles is the catalogue of common offices and their seniority.
var PredefinedTitles = []TitleTemplate{
	{ID: "pope", Label: "Pope", Rank: RankPope},
	{ID: "patriarch", Label: "Patriarch", Rank: RankPope},
	{ID: "emperor", Label: "Emperor", Rank: RankEmperor},
	{ID: "king", Label: "King", Rank: RankKing},
	{ID: "queen", Label: "Queen", Rank: RankKing},
	{ID: "president", Label: "President", Rank: RankKing},
	{ID: "duke", Label: "Duke", Rank: RankDuke},
	{ID: "duchess", Label: "Duchess", Rank: RankDuke},
	{ID: "mayor", Label: "Mayor of the Palace", Rank: RankDuke},
	{ID: "count", Label: "Count", Rank: RankCount},
	{ID: "general", Label: "General", Rank: RankGeneral},
	{ID: "peasant", Label: "Peasant", Rank: RankPeasant},
}

var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatDate renders "12 Mar 1815", "Mar 1815" or "1815" depending on known precision.
func FormatDate(year, month, day int) string {
	if month < 1 || month > 12 {
		return strconv.Itoa(year)
	}
	if day < 1 {
		return fmt.Sprintf("%s %d", monthLabels[month-1], year)
	}
	return fmt.Sprintf("%d %s %d", day, monthLabels[month-1], year)
}
