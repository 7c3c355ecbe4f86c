package game

// NextActiveIndex ищет следующего активного игрока по кругу начиная
// с from+1, пропуская выбывших. Делает не больше одного полного круга:
// если активных не осталось, возвращает from без изменений - вызывающий
// обязан сам распознать терминальное состояние до вызова.
//
// wrapped=true означает, что обход перешел через конец списка
// (next <= from) - этим эвристически засчитывается конец раунда.
func NextActiveIndex(from int, players []*Player) (next int, wrapped bool) {
	n := len(players)
	if n == 0 {
		return from, false
	}

	for step := 1; step <= n; step++ {
		i := (from + step) % n
		if players[i].Status == StatusActive {
			return i, i <= from
		}
	}

	return from, false
}

// возвращает число активных игроков
func countActive(players []*Player) int {
	active := 0
	for _, p := range players {
		if p.Status == StatusActive {
			active++
		}
	}
	return active
}
