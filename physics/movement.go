package physics

import (
	"github.com/lixenwraith/agentlab/vmath"
)

// CapSpeed limits the velocity magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(vel *vmath.Vec3F, maxSpeed float64) bool {
	if vmath.V3FMagSq(*vel) <= maxSpeed*maxSpeed && maxSpeed >= 0 {
		return false
	}
	*vel = vmath.V3FClampMagnitude(*vel, maxSpeed)
	return true
}
