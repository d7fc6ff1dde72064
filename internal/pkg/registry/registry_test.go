package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingModule struct {
	name     string
	priority int
	initErr  error
	order    *[]string
}

func (m *recordingModule) Name() string  { return m.name }
func (m *recordingModule) Priority() int { return m.priority }
func (m *recordingModule) Init(*ModuleContext) error {
	*m.order = append(*m.order, m.name)
	return m.initErr
}

func withCleanRegistry(t *testing.T) {
	saved := moduleRegistry
	moduleRegistry = make(map[string]Module)
	t.Cleanup(func() { moduleRegistry = saved })
}

func TestInitModulesOrder(t *testing.T) {
	withCleanRegistry(t)

	var order []string
	Register(&recordingModule{name: "common", priority: 100, order: &order})
	Register(&recordingModule{name: "winner", priority: 20, order: &order})
	Register(&recordingModule{name: "auth", priority: 1, order: &order})
	Register(&recordingModule{name: "entry", priority: 20, order: &order})

	assert.NoError(t, InitModules(&ModuleContext{}))
	assert.Equal(t, []string{"auth", "entry", "winner", "common"}, order)
}

func TestInitModulesStopsOnError(t *testing.T) {
	withCleanRegistry(t)

	var order []string
	boom := errors.New("boom")
	Register(&recordingModule{name: "a", priority: 1, initErr: boom, order: &order})
	Register(&recordingModule{name: "b", priority: 2, order: &order})

	assert.ErrorIs(t, InitModules(&ModuleContext{}), boom)
	assert.Equal(t, []string{"a"}, order)
}
