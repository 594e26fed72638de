package parameter

// PSO - Domain
const (
	// PSODomain is the half-extent of the square search domain [-PSODomain, PSODomain]²
	PSODomain = 30.0

	// PSOConvergenceThreshold stops the swarm once the global best is closer than this
	PSOConvergenceThreshold = 0.7
)

// PSO - Default Parameters
const (
	PSOPopulation    = 10
	PSOMinPopulation = 3
	PSOGenerations   = 15

	// PSOInertia is the fraction of previous velocity retained per generation
	PSOInertia    = 0.6
	PSOInertiaMax = 1.2

	// PSOCognition pulls toward personal best, PSOSocial toward global best
	PSOCognition = 1.8
	PSOSocial    = 2.1
)

// PSO - Runtime Adjustment Steps
const (
	PSOGenerationStep  = 2
	PSOPopulationStep  = 1
	PSOInertiaStep     = 0.05
	PSOCoefficientStep = 0.1
)
