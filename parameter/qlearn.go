package parameter

// Q-Learning - Environment
const (
	// QLMapSize is the side length of the generated square grid
	QLMapSize = 10

	// QLGoalMin is the lowest coordinate (both axes) of the randomized goal region
	QLGoalMin = 7

	// Scatter attempts per tile kind, occupied cells are skipped without retry
	QLWallCount  = 15
	QLTrap1Count = 5
	QLTrap2Count = 4
	QLTrap3Count = 2
)

// Q-Learning - Rewards
const (
	QLRewardGoal  = 100.0
	QLRewardWall  = -10.0
	QLRewardTrap1 = -25.0
	QLRewardTrap2 = -50.0
	QLRewardTrap3 = -100.0
	QLRewardStep  = -1.0
)

// Q-Learning - Health
const (
	QLMaxHealth = 100

	QLDamageTrap1 = 25
	QLDamageTrap2 = 50
	QLDamageTrap3 = 100
)

// Q-Learning - Training
const (
	QLLearningRate = 0.1
	QLDiscount     = 0.9
	QLEpsilon      = 0.1
	QLEpisodes     = 1000
	QLMaxSteps     = 100

	// QLLogEvery is the episode interval between progress log lines
	QLLogEvery = 100

	// QLRolloutCap is the path length at which a rollout is abandoned as stuck
	QLRolloutCap = 500
)

// QLSnapshotEpisodes are the episode boundaries at which the value table is copied.
// Episode 0 is the untrained table.
var QLSnapshotEpisodes = []int{0, 10, 50, 100, 200, 500, 1000}

// QLStageEpsilons pairs with QLSnapshotEpisodes: early stages replay with more exploration
var QLStageEpsilons = []float64{0.9, 0.7, 0.5, 0.3, 0.2, 0.1, 0.0}
