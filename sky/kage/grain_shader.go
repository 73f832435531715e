//go:build ignore

//kage:unit pixels

package main

var Time float
var Opacity float

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	base := imageSrc0At(srcPos)
	size := imageDstSize()
	pos := dstPos.xy - imageDstOrigin()
	frag := vec2(pos.x, size.y-pos.y)

	off := fract(Time * 123.456)
	n := fract(sin(dot(frag+off, vec2(12.9898, 78.233))) * 43758.5453)

	lo := 2.0 * base.rgb * n
	hi := 1.0 - 2.0*(1.0-base.rgb)*(1.0-n)
	over := mix(lo, hi, step(vec3(0.5), base.rgb))
	return vec4(mix(base.rgb, over, Opacity), base.a)
}
