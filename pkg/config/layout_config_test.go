package config

import "testing"

func TestScrollLengthPixels(t *testing.T) {
	tests := []struct {
		name   string
		height int
		want   float64
	}{
		{"默认窗口", WindowHeight, 9 * WindowHeight},
		{"1080p", 1080, 9720},
		{"无效高度回退默认值", 0, 9 * WindowHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrollLengthPixels(tt.height); got != tt.want {
				t.Errorf("ScrollLengthPixels(%d) = %v, want %v", tt.height, got, tt.want)
			}
		})
	}
}

func TestPageScrollStep(t *testing.T) {
	if PageScrollStep*ScrollLengthScreens != 1 {
		t.Errorf("a page step should cover one viewport, got %v", PageScrollStep)
	}
}
