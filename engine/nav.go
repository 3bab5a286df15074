package engine

import "lumen/ui"

// navStack owns screen navigation. Only the loop goroutine touches
// it. The stack is never empty; popping the root is a no-op.
type navStack struct {
	screens []ui.Screen
}

func newNavStack(root ui.Screen) *navStack {
	return &navStack{screens: []ui.Screen{root}}
}

func (n *navStack) top() ui.Screen {
	return n.screens[len(n.screens)-1]
}

func (n *navStack) depth() int {
	return len(n.screens)
}

func (n *navStack) apply(tr ui.Transition) {
	switch tr.Kind {
	case ui.TransPush:
		if tr.To != nil {
			n.screens = append(n.screens, tr.To)
		}
	case ui.TransPop:
		if len(n.screens) > 1 {
			n.screens[len(n.screens)-1] = nil
			n.screens = n.screens[:len(n.screens)-1]
		}
	case ui.TransReplace:
		if tr.To != nil {
			n.screens[len(n.screens)-1] = tr.To
		}
	}
}
