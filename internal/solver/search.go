package solver

import (
	"math"
	"math/rand"
	"time"

	"github.com/fesup-dev/forum-planner/backend/internal/domain"
)

// Parameters 控制一次搜索的预算和退火曲线
type Parameters struct {
	TimeBudget     time.Duration
	Patience       int
	TempHigh       float64
	TempLow        float64
	UnassignChance float64
}

// Search 在时间预算内做模拟退火：每步随机改写一个槽位，
// 变差的解按温度对应的概率接受，温度随进度几何衰减。
// 接受判据用加权标量（硬分远重于软分），最优解按字典序单独跟踪
func (e *Evaluator) Search(params *Parameters, rng *rand.Rand) (*Solution, domain.Score) {
	current := newSolution(len(e.problem.Participants))
	currentScore := e.Evaluate(current)

	best := current.Clone()
	bestScore := currentScore

	if len(current.Slots) == 0 || len(e.problem.Sessions) == 0 {
		return best, bestScore
	}

	weighted := func(s domain.Score) float64 {
		return float64(s.Hard)*1_000_000 + float64(s.Soft)
	}

	start := time.Now()
	sinceImprovement := 0

	for {
		elapsed := time.Since(start)
		if elapsed >= params.TimeBudget {
			break
		}
		if sinceImprovement >= params.Patience {
			break
		}

		progress := float64(elapsed) / float64(params.TimeBudget)
		temperature := params.TempHigh * math.Pow(params.TempLow/params.TempHigh, progress)

		slot := rng.Intn(len(current.Slots))
		old := current.Slots[slot]

		next := Unassigned
		if rng.Float64() >= params.UnassignChance {
			next = rng.Intn(len(e.problem.Sessions))
		}
		if next == old {
			sinceImprovement++
			continue
		}

		current.Slots[slot] = next
		nextScore := e.Evaluate(current)

		delta := weighted(nextScore) - weighted(currentScore)
		if delta >= 0 || rng.Float64() < math.Exp(delta/temperature) {
			currentScore = nextScore
			if bestScore.Less(currentScore) {
				copy(best.Slots, current.Slots)
				bestScore = currentScore
				sinceImprovement = 0
			} else {
				sinceImprovement++
			}
		} else {
			current.Slots[slot] = old
			sinceImprovement++
		}
	}

	return best, bestScore
}
