package gameplay

import "github.com/gonewx/pigeondash/pkg/utils"

// 落地反馈参数
const (
	landingVolumeScale = 1000.0
	landingVolumeMin   = 0.05
	landingVolumeMax   = 0.5

	landingShakeScale = 1200.0
	// LandingShakeMax 最大震屏幅度（像素）
	LandingShakeMax = 8.0
)

// LandingVolume 落地音效音量: clamp(v/1000, 0.05, 0.5)
func LandingVolume(impactVelocity float64) float64 {
	return utils.Clamp(impactVelocity/landingVolumeScale, landingVolumeMin, landingVolumeMax)
}

// LandingShake 落地震屏幅度: min(v/1200, 1) * 8
func LandingShake(impactVelocity float64) float64 {
	return min(max(impactVelocity, 0)/landingShakeScale, 1) * LandingShakeMax
}
