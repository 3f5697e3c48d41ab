package angif

// DisposalMode tells a player what to do with a frame's area once its
// delay has elapsed, before drawing the next one. Composing that
// behavior is outside this package; the value is
// still carried end to end so a caller that does own a player can act
// on it.
type DisposalMode int

const (
	DisposalUnspecified DisposalMode = 0
	DisposalDoNot       DisposalMode = 1
	DisposalBackground  DisposalMode = 2
	DisposalPrevious    DisposalMode = 3
)

// NoTransparentColor marks a Graphics Control Block with no
// transparent index, matching gif_lib.h's NO_TRANSPARENT_COLOR.
const NoTransparentColor = -1

// GraphicsControlBlock is the decoded form of a 0xF9 graphic control
// extension, mirroring gif_lib.h's GraphicsControlBlock.
type GraphicsControlBlock struct {
	DisposalMode     DisposalMode
	UserInputFlag    bool
	DelayTime        int // hundredths of a second
	TransparentColor int // palette index, or NoTransparentColor
}

// GraphicsControl decodes this frame's leading 0xF9 extension block, if
// any. ok is false when the frame has no graphic control extension.
// Mirrors gif_lib.c's DGifExtensionToGCB/DGifSavedExtensionToGCB,
// which are declared in gif_lib.h but have no body in gif_lib.c; this
// follows the 4-byte field layout the GIF89a spec defines for 0xF9.
func (f *Frame) GraphicsControl() (gcb GraphicsControlBlock, ok bool) {
	for _, ext := range f.Extensions {
		if ext.Function != 0xF9 || len(ext.Bytes) < 4 {
			continue
		}
		packed := ext.Bytes[0]
		gcb.DisposalMode = DisposalMode((packed >> 2) & 0x07)
		gcb.UserInputFlag = packed&0x02 != 0
		gcb.DelayTime = int(ext.Bytes[1]) | int(ext.Bytes[2])<<8
		if packed&0x01 != 0 {
			gcb.TransparentColor = int(ext.Bytes[3])
		} else {
			gcb.TransparentColor = NoTransparentColor
		}
		return gcb, true
	}
	return GraphicsControlBlock{TransparentColor: NoTransparentColor}, false
}

// SetGraphicsControl replaces this frame's 0xF9 extension (inserting
// one at the front of the extension list if none exists yet) with the
// encoding of gcb. Mirrors gif_lib.c's EGifGCBToExtension/
// EGifGCBToSavedExtension.
func (f *Frame) SetGraphicsControl(gcb GraphicsControlBlock) {
	packed := byte(gcb.DisposalMode&0x07) << 2
	if gcb.UserInputFlag {
		packed |= 0x02
	}
	transparent := byte(0)
	if gcb.TransparentColor != NoTransparentColor {
		packed |= 0x01
		transparent = byte(gcb.TransparentColor)
	}
	ext := ExtensionBlock{
		Function: 0xF9,
		Bytes: []byte{
			packed,
			byte(gcb.DelayTime & 0xFF),
			byte((gcb.DelayTime >> 8) & 0xFF),
			transparent,
		},
	}

	for i, e := range f.Extensions {
		if e.Function == 0xF9 {
			f.Extensions[i] = ext
			return
		}
	}
	f.Extensions = append([]ExtensionBlock{ext}, f.Extensions...)
}

// netscapeLoopExtBytes builds the two sub-blocks of a NETSCAPE2.0
// application extension encoding an animation loop count: an 11-byte
// "NETSCAPE2.0" application identifier block, then a 3-byte
// continuation whose payload is sub-block ID 1 followed by the little-
// endian loop count. Grounded on the #ifdef FUTURE Netscape block
// sketched in gif_lib.c's EGifSpew and on ManInM00N-nicogif's
// writeNetscapeExt.
func netscapeLoopExtBytes(loopCount int) (appID ExtensionBlock, data ExtensionBlock) {
	appID = ExtensionBlock{Function: 0xFF, Bytes: []byte("NETSCAPE2.0")}
	data = ExtensionBlock{
		Function: 0,
		Bytes: []byte{
			1,
			byte(loopCount & 0xFF),
			byte((loopCount >> 8) & 0xFF),
		},
	}
	return appID, data
}

// SetLoopCount installs (or replaces) a NETSCAPE2.0 looping extension
// ahead of the file's first frame. n == 0 means loop forever, matching
// the convention every major browser settled on for this
// non-standard-but-universal extension.
func (f *File) SetLoopCount(n int) {
	if len(f.Frames) == 0 {
		return
	}
	first := f.Frames[0]
	appID, data := netscapeLoopExtBytes(n)

	filtered := first.Extensions[:0:0]
	for i := 0; i < len(first.Extensions); i++ {
		e := first.Extensions[i]
		if e.Function == 0xFF && string(e.Bytes) == "NETSCAPE2.0" {
			i++ // also drop its continuation block
			continue
		}
		filtered = append(filtered, e)
	}
	first.Extensions = append([]ExtensionBlock{appID, data}, filtered...)
}

// LoopCount reports the loop count carried by a NETSCAPE2.0 extension
// on the first frame, if present.
func (f *File) LoopCount() (n int, ok bool) {
	if len(f.Frames) == 0 {
		return 0, false
	}
	exts := f.Frames[0].Extensions
	for i, e := range exts {
		if e.Function == 0xFF && string(e.Bytes) == "NETSCAPE2.0" && i+1 < len(exts) {
			cont := exts[i+1]
			if cont.Function == 0 && len(cont.Bytes) >= 3 && cont.Bytes[0] == 1 {
				return int(cont.Bytes[1]) | int(cont.Bytes[2])<<8, true
			}
		}
	}
	return 0, false
}
