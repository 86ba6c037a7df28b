// Package persist saves and restores layouts through a [store.Store].
//
// A layout is stored as one JSON record:
//
//	{"boardSizeId":"24x24","items":[{"id":"…","templateId":"hook-single","x":3,"y":4,"rotation":0}],
//	 "colorId":"white","textureId":"plain"}
//
// Loading is forgiving. Older records without colorId, textureId or item
// rotations are filled with catalog defaults, the legacy key "size" is read
// as boardSizeId, and items whose template no longer exists are dropped.
// Anything unreadable falls back to the default layout.
package persist
