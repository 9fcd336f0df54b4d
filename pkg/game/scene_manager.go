package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 根据关卡名创建场景，避免 game 包依赖具体场景实现
type SceneFactory func(levelName string) (Scene, error)

// SceneManager 管理当前活动场景
type SceneManager struct {
	currentScene Scene
	currentLevel string
	sceneFactory SceneFactory
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo 切换活动场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadLevel 通过工厂创建指定关卡的场景并切换过去
// 失败时保留当前场景
//
// 返回：
//   - bool: 是否切换成功
func (sm *SceneManager) LoadLevel(levelName string) bool {
	log.Printf("[SceneManager] 加载关卡: %s", levelName)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	scene, err := sm.sceneFactory(levelName)
	if err != nil || scene == nil {
		log.Printf("[SceneManager] 错误: 无法创建关卡场景 %s: %v", levelName, err)
		return false
	}

	sm.SwitchTo(scene)
	sm.currentLevel = levelName
	return true
}

// ReloadLevel 重新加载当前关卡
func (sm *SceneManager) ReloadLevel() bool {
	return sm.LoadLevel(sm.currentLevel)
}

// CurrentLevel 返回当前关卡名
func (sm *SceneManager) CurrentLevel() string {
	return sm.currentLevel
}

// SaveOnExit 若当前场景实现了 Saveable 则保存
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Update 更新当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景，没有活动场景时什么也不做
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
