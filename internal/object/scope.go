package object

// ScopeID indexes a frame in a Scopes arena.
type ScopeID int

// NoScope is the parent of a root frame.
const NoScope ScopeID = -1

type frame struct {
	vars   map[string]Object
	parent ScopeID
}

// Scopes is an arena of binding frames. Lookups walk parent indices outward;
// a name is bound when its key is present, whatever the stored value.
type Scopes struct {
	frames []frame
}

func NewScopes() *Scopes {
	return &Scopes{}
}

// Push creates a frame enclosed by parent (NoScope for a root frame).
func (s *Scopes) Push(parent ScopeID) ScopeID {
	s.frames = append(s.frames, frame{vars: map[string]Object{}, parent: parent})
	return ScopeID(len(s.frames) - 1)
}

func (s *Scopes) Parent(id ScopeID) ScopeID {
	return s.frames[id].parent
}

// Define binds name in frame id, replacing any existing binding there.
func (s *Scopes) Define(id ScopeID, name string, val Object) {
	s.frames[id].vars[name] = val
}

func (s *Scopes) Get(id ScopeID, name string) (Object, bool) {
	for ; id != NoScope; id = s.frames[id].parent {
		if val, ok := s.frames[id].vars[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// Assign rebinds name in the nearest frame that already defines it.
func (s *Scopes) Assign(id ScopeID, name string, val Object) bool {
	for ; id != NoScope; id = s.frames[id].parent {
		if _, ok := s.frames[id].vars[name]; ok {
			s.frames[id].vars[name] = val
			return true
		}
	}
	return false
}

func (s *Scopes) GetHere(id ScopeID, name string) (Object, bool) {
	val, ok := s.frames[id].vars[name]
	return val, ok
}

// Snapshot copies the bindings of a single frame.
func (s *Scopes) Snapshot(id ScopeID) map[string]Object {
	vars := s.frames[id].vars
	out := make(map[string]Object, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out
}
