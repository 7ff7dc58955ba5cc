package systems

import "github.com/go-gl/mathgl/mgl64"

// lerpVec 向量线性插值
func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// clampDelta 把帧间隔限制在 [0, max]
func clampDelta(dt, max float64) float64 {
	if dt != dt || dt < 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}
