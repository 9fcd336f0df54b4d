package game

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/gonewx/pigeondash/pkg/gameplay"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundID 音效标识
type SoundID string

const (
	SoundDash     SoundID = "dash"
	SoundHit      SoundID = "hit"
	SoundLand     SoundID = "land"
	SoundKill     SoundID = "kill"
	SoundNuke     SoundID = "nuke"
	SoundGameOver SoundID = "game_over"
)

// Tone 程序化合成的单个音效: 频率在时长内线性滑变，振幅指数衰减
type Tone struct {
	StartFrequency float64
	EndFrequency   float64
	Duration       float64
	Decay          float64
	// Noise 为 true 时叠加白噪声（爆炸、撞击）
	Noise bool
}

// DefaultTones 内置音效表
var DefaultTones = map[SoundID]Tone{
	SoundDash:     {StartFrequency: 320, EndFrequency: 960, Duration: 0.18, Decay: 10},
	SoundHit:      {StartFrequency: 180, EndFrequency: 90, Duration: 0.2, Decay: 14, Noise: true},
	SoundLand:     {StartFrequency: 110, EndFrequency: 70, Duration: 0.12, Decay: 20, Noise: true},
	SoundKill:     {StartFrequency: 660, EndFrequency: 1320, Duration: 0.12, Decay: 12},
	SoundNuke:     {StartFrequency: 90, EndFrequency: 30, Duration: 0.6, Decay: 5, Noise: true},
	SoundGameOver: {StartFrequency: 440, EndFrequency: 110, Duration: 0.8, Decay: 3},
}

// AudioManager 音频管理器
// 职责：
//   - 启动时把内置音效合成为 PCM 数据
//   - 订阅模拟事件并播放对应音效
//   - 从 SettingsManager 读取音量与开关
//
// audio.Context 为 nil 时所有播放都是空操作（无声模式、测试环境）。
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	samples         map[SoundID][]byte
	noiseSeed       uint32
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		samples:         make(map[SoundID][]byte, len(DefaultTones)),
		noiseSeed:       0x9e3779b9,
	}

	if ctx != nil {
		for id, tone := range DefaultTones {
			am.samples[id] = am.Synthesize(tone, ctx.SampleRate())
		}
		log.Printf("[AudioManager] Synthesized %d sounds at %d Hz", len(am.samples), ctx.SampleRate())
	}
	return am
}

// Attach 订阅模拟事件
func (am *AudioManager) Attach(bus *gameplay.EventBus) {
	bus.Subscribe(gameplay.EventDashReleased, func(ev gameplay.Event) {
		p, _ := ev.Payload.(gameplay.DashReleasedPayload)
		am.PlaySound(SoundDash, 0.3+0.7*p.Power)
	})
	bus.Subscribe(gameplay.EventTookDamage, func(gameplay.Event) {
		am.PlaySound(SoundHit, 1)
	})
	bus.Subscribe(gameplay.EventLanded, func(ev gameplay.Event) {
		p, _ := ev.Payload.(gameplay.LandedPayload)
		am.PlaySound(SoundLand, gameplay.LandingVolume(p.ImpactVelocity))
	})
	bus.Subscribe(gameplay.EventEnemyDestroyed, func(gameplay.Event) {
		am.PlaySound(SoundKill, 0.8)
	})
	bus.Subscribe(gameplay.EventNukeSpawned, func(gameplay.Event) {
		am.PlaySound(SoundNuke, 1)
	})
	bus.Subscribe(gameplay.EventGameOver, func(gameplay.Event) {
		am.PlaySound(SoundGameOver, 1)
	})
}

// PlaySound 播放音效
//
// 参数：
//   - id: 音效标识
//   - scale: 相对音量，与设置中的音效音量相乘
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(id SoundID, scale float64) bool {
	if am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	data, ok := am.samples[id]
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return false
	}

	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(clampVolume(am.GetSoundVolume() * scale))
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量，影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8 // 默认值
}

// Synthesize 合成 16 位小端立体声 PCM（ebiten audio 的原生格式）
func (am *AudioManager) Synthesize(tone Tone, sampleRate int) []byte {
	frames := int(tone.Duration * float64(sampleRate))
	buf := make([]byte, frames*4)

	phase := 0.0
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(max(frames, 1))
		freq := tone.StartFrequency + (tone.EndFrequency-tone.StartFrequency)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		sample := math.Sin(phase)
		if tone.Noise {
			sample = 0.6*sample + 0.4*am.nextNoise()
		}
		sample *= math.Exp(-tone.Decay * t)

		v := int16(sample * 0.8 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}

// nextNoise xorshift 白噪声，范围 [-1, 1]
func (am *AudioManager) nextNoise() float64 {
	x := am.noiseSeed
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	am.noiseSeed = x
	return float64(x)/float64(math.MaxUint32)*2 - 1
}
