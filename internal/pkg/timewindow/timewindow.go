package timewindow

import (
	"time"
)

// Window 本地时钟小时区间 [StartHour, EndHour)。
// 两端相等视为永久关闭。不做时区换算，以调用方本地时钟为准。
type Window struct {
	StartHour int
	EndHour   int
}

func New(startHour, endHour int) Window {
	return Window{StartHour: startHour, EndHour: endHour}
}

// Contains 判断时刻是否落在窗口内
func (w Window) Contains(t time.Time) bool {
	if w.StartHour == w.EndHour {
		return false
	}
	hour := t.Hour()
	return hour >= w.StartHour && hour < w.EndHour
}
