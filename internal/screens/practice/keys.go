package practice

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Submit  key.Binding
	Explain key.Binding
	Next    key.Binding
	Retry   key.Binding
	Home    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "选择")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑↓", "选择")),
		Submit:  key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "提交")),
		Explain: key.NewBinding(key.WithKeys("e"), key.WithHelp("E", "看看小老师的解析")),
		Next:    key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("N", "下一题")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "重试")),
		Home:    key.NewBinding(key.WithKeys("esc", "h"), key.WithHelp("Esc", "返回主页")),
	}
}
