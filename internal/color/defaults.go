package color

// Compiled-in palettes. The YAML configs under internal/config/defaults
// carry the same data; these are the fallback when parsing fails.

// BasePalette is the sort game's colour pool.
var BasePalette = MustPalette(
	MustColor("red", "#ef4444"),
	MustColor("orange", "#f97316"),
	MustColor("yellow", "#facc15"),
	MustColor("pink", "#ec4899"),
	MustColor("brown", "#92400e"),
	MustColor("amber", "#f59e0b"),
	MustColor("blue", "#3b82f6"),
	MustColor("green", "#22c55e"),
	MustColor("teal", "#14b8a6"),
	MustColor("cyan", "#06b6d4"),
	MustColor("indigo", "#6366f1"),
	MustColor("violet", "#8b5cf6"),
	MustColor("purple", "#a855f7"),
	MustColor("gray", "#6b7280"),
	MustColor("black", "#111827"),
	MustColor("white", "#f9fafb"),
	MustColor("lime", "#84cc16"),
)

// RushPalette is the reaction game's tile pool.
var RushPalette = MustPalette(
	MustColor("red", "#ef4444"),
	MustColor("blue", "#3b82f6"),
	MustColor("green", "#22c55e"),
	MustColor("yellow", "#facc15"),
	MustColor("purple", "#a855f7"),
)

// HuntPalette is the hunt game's target set.
var HuntPalette = MustPalette(
	MustColor("red", "#f87171"),
	MustColor("orange", "#fb923c"),
	MustColor("yellow", "#facc15"),
	MustColor("green", "#4ade80"),
	MustColor("blue", "#60a5fa"),
	MustColor("purple", "#c084fc"),
)

// WarmCool is the default bucket rule.
var WarmCool = BucketTable{
	"red":    BucketWarm,
	"orange": BucketWarm,
	"yellow": BucketWarm,
	"pink":   BucketWarm,
	"brown":  BucketWarm,
	"amber":  BucketWarm,
	"blue":   BucketCool,
	"green":  BucketCool,
	"teal":   BucketCool,
	"cyan":   BucketCool,
	"indigo": BucketCool,
	"violet": BucketCool,
	"purple": BucketCool,
	"gray":   BucketCool,
	"black":  BucketCool,
	"white":  BucketCool,
	"lime":   BucketCool,
}
