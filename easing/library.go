package easing

import "github.com/fogleman/ease"

// Library returns the Penner curve family under jQuery-style names.
func Library() map[string]Func {
	return map[string]Func{
		"easeInQuad":       ease.InQuad,
		"easeOutQuad":      ease.OutQuad,
		"easeInOutQuad":    ease.InOutQuad,
		"easeInCubic":      ease.InCubic,
		"easeOutCubic":     ease.OutCubic,
		"easeInOutCubic":   ease.InOutCubic,
		"easeInQuart":      ease.InQuart,
		"easeOutQuart":     ease.OutQuart,
		"easeInOutQuart":   ease.InOutQuart,
		"easeInQuint":      ease.InQuint,
		"easeOutQuint":     ease.OutQuint,
		"easeInOutQuint":   ease.InOutQuint,
		"easeInSine":       ease.InSine,
		"easeOutSine":      ease.OutSine,
		"easeInOutSine":    ease.InOutSine,
		"easeInExpo":       ease.InExpo,
		"easeOutExpo":      ease.OutExpo,
		"easeInOutExpo":    ease.InOutExpo,
		"easeInCirc":       ease.InCirc,
		"easeOutCirc":      ease.OutCirc,
		"easeInOutCirc":    ease.InOutCirc,
		"easeInElastic":    ease.InElastic,
		"easeOutElastic":   ease.OutElastic,
		"easeInOutElastic": ease.InOutElastic,
		"easeInBack":       ease.InBack,
		"easeOutBack":      ease.OutBack,
		"easeInOutBack":    ease.InOutBack,
		"easeInBounce":     ease.InBounce,
		"easeOutBounce":    ease.OutBounce,
		"easeInOutBounce":  ease.InOutBounce,
	}
}
