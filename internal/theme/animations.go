package theme

import "sort"

// Animation effect names.
const (
	AnimationScale     = "scale"
	AnimationPulse     = "pulse"
	AnimationShake     = "shake"
	AnimationRotate    = "rotate"
	AnimationBounce    = "bounce"
	AnimationFade      = "fade"
	AnimationGlow      = "glow"
	AnimationHighlight = "highlight"
	AnimationWave      = "wave"
	AnimationSparkle   = "sparkle"
)

// Inline CSS applied on hover per effect.
var animationCSS = map[string]string{
	AnimationScale:     "transform: scale(1.1)",
	AnimationPulse:     "animation: pulse 1s infinite",
	AnimationShake:     "animation: shake 0.5s",
	AnimationRotate:    "transform: rotate(5deg)",
	AnimationBounce:    "animation: bounce 0.5s",
	AnimationFade:      "opacity: 0.8",
	AnimationGlow:      "box-shadow: 0 0 10px rgba(255,255,0,0.5)",
	AnimationHighlight: "background-color: rgba(255,255,0,0.3)",
	AnimationWave:      "animation: wave 1s infinite",
	AnimationSparkle:   "animation: sparkle 1s infinite",
}

// Keyframe definitions for the effects that animate over time.
var animationKeyframes = map[string]string{
	AnimationPulse:   "@keyframes pulse { 0% { transform: scale(1); } 50% { transform: scale(1.05); } 100% { transform: scale(1); } }",
	AnimationShake:   "@keyframes shake { 0%, 100% { transform: translateX(0); } 25% { transform: translateX(-5px); } 75% { transform: translateX(5px); } }",
	AnimationBounce:  "@keyframes bounce { 0%, 100% { transform: translateY(0); } 50% { transform: translateY(-5px); } }",
	AnimationWave:    "@keyframes wave { 0% { transform: rotate(0deg); } 25% { transform: rotate(5deg); } 75% { transform: rotate(-5deg); } 100% { transform: rotate(0deg); } }",
	AnimationSparkle: "@keyframes sparkle { 0%, 100% { filter: brightness(1); } 50% { filter: brightness(1.4); } }",
}

// AnimationNames returns every effect name, sorted
func AnimationNames() []string {
	names := make([]string, 0, len(animationCSS))
	for name := range animationCSS {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnimationCSS returns the hover CSS for an effect, or empty if unknown
func AnimationCSS(name string) string {
	return animationCSS[name]
}

// AnimationKeyframes returns the @keyframes blocks needed by the given
// effects, sorted for stable output. Effects without keyframes (pure
// transforms) contribute nothing.
func AnimationKeyframes(names []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range names {
		kf, ok := animationKeyframes[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, kf)
	}
	sort.Strings(out)
	return out
}
