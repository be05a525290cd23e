package behaviour

import "SolarSystem/internal/renderer"

// Behaviour is per-frame logic that runs before the scene is drawn.
type Behaviour interface {
	Start(state *renderer.ProgramState)
	Update(state *renderer.ProgramState)
}

type BehaviourWrapper struct {
	Behaviour Behaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

var GlobalBehaviourManager = NewBehaviourManager()

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

// Remove drops behaviour while keeping the order of the others.
func (m *BehaviourManager) Remove(behaviour Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

// UpdateAll starts new behaviours and updates every behaviour in the order
// they were added.
func (m *BehaviourManager) UpdateAll(state *renderer.ProgramState) {
	for i := range m.behaviours {
		if !m.behaviours[i].started {
			m.behaviours[i].Behaviour.Start(state)
			m.behaviours[i].started = true
		}
		m.behaviours[i].Behaviour.Update(state)
	}
}
