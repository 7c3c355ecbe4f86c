package game

import "sort"

// RankEntry - одна строка финальной таблицы мест
type RankEntry struct {
	Rank           int    `json:"rank"`
	PlayerID       string `json:"player_id"`
	Name           string `json:"name"`
	Cause          Cause  `json:"cause,omitempty"`
	EliminatedBy   string `json:"eliminated_by,omitempty"`
	Round          int    `json:"round,omitempty"`
	RoundsSurvived int    `json:"rounds_survived"`
	Revivals       int    `json:"revivals"`
}

// ComputeRankings строит итоговую таблицу: победитель первый (если
// выжил хоть кто-то), дальше выбывшие по убыванию ключа выбывания -
// кто продержался дольше, тот выше. При равенстве сохраняется
// исходный порядок состава (стабильная сортировка). Выбывшие всегда
// занимают места со второго: при взаимном уничтожении первое место
// остается вакантным.
func ComputeRankings(players []*Player, finalRound int) []RankEntry {
	var out []RankEntry

	for _, p := range players {
		if p.Status == StatusWinner {
			out = append(out, RankEntry{
				Rank:           1,
				PlayerID:       p.ID,
				Name:           p.Name,
				RoundsSurvived: finalRound,
				Revivals:       p.Revivals,
			})
			break
		}
	}

	losers := make([]*Player, 0, len(players))
	for _, p := range players {
		if p.Status == StatusEliminated && p.Elimination != nil {
			losers = append(losers, p)
		}
	}
	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].Elimination.OrderKey > losers[j].Elimination.OrderKey
	})

	rank := 2
	for _, p := range losers {
		out = append(out, RankEntry{
			Rank:           rank,
			PlayerID:       p.ID,
			Name:           p.Name,
			Cause:          p.Elimination.Cause,
			EliminatedBy:   p.Elimination.EliminatedBy,
			Round:          p.Elimination.Round,
			RoundsSurvived: p.Elimination.Round,
			Revivals:       p.Revivals,
		})
		rank++
	}

	return out
}
