package angif

import (
	"io"

	"github.com/pixeldeck/angif/internal/lzw"
)

// Serialize writes f as a complete GIF89a byte stream. Extension
// blocks on each frame are written exactly as they sit in
// Frame.Extensions — a record with a non-zero Function opens a new
// extension, and every following Function-zero record until the next
// non-zero one (or the end of the list) is written as its
// continuation sub-block, closed with the usual zero-length
// terminator. Each block's Bytes must already be at most 255 bytes;
// SetGraphicsControl/SetLoopCount/the parser all produce blocks within
// that limit. Mirrors gif_lib.c's EGifSpew.
func Serialize(f *File, w io.Writer) error {
	buf := newByteBuf()

	buf.write([]byte("GIF89a"))

	writeShort(buf, f.Width)
	writeShort(buf, f.Height)

	packed := byte((f.ColorResolution-1)&0x07) << 4
	gctSize := 0
	if f.GlobalColorMap != nil && len(f.GlobalColorMap.Colors) > 0 {
		packed |= 0x80
		gctSize = f.GlobalColorMap.BitsPerPixel() - 1
		if f.GlobalColorMap.SortFlag {
			packed |= 0x08
		}
		packed |= byte(gctSize & 0x07)
	}
	buf.writeByte(packed)
	buf.writeByte(f.BackgroundColorIndex)
	buf.writeByte(f.AspectByte)

	if packed&0x80 != 0 {
		writeColorMap(buf, f.GlobalColorMap)
	}

	enc := lzw.NewEncoder()
	for _, frame := range f.Frames {
		if err := writeExtensions(buf, frame.Extensions); err != nil {
			return err
		}
		minCodeSize := 2
		if cm, ok := frame.EffectiveColorMap(f); ok {
			minCodeSize = cm.BitsPerPixel()
			if minCodeSize < 2 {
				minCodeSize = 2
			}
		}
		writeFrame(buf, frame, enc, minCodeSize)
	}

	buf.writeByte(trailerByte)

	_, err := w.Write(buf.bytes())
	if err != nil {
		return wrapError(ErrWriteFailed, err, "writing GIF stream")
	}
	return nil
}

func writeShort(buf *byteBuf, v int) {
	buf.writeByte(byte(v & 0xFF))
	buf.writeByte(byte((v >> 8) & 0xFF))
}

func writeColorMap(buf *byteBuf, cm *ColorMap) {
	for _, c := range cm.Colors {
		buf.writeByte(c.R)
		buf.writeByte(c.G)
		buf.writeByte(c.B)
	}
}

func writeExtensions(buf *byteBuf, exts []ExtensionBlock) error {
	for i := 0; i < len(exts); i++ {
		e := exts[i]
		if e.Function == 0 {
			return newError(ErrWriteFailed, "extension list starts with a continuation block")
		}
		if len(e.Bytes) > maxSubBlockLen {
			return newError(ErrDataTooBig, "extension sub-block longer than 255 bytes")
		}
		buf.writeByte(extIntro)
		buf.writeByte(e.Function)
		buf.writeByte(byte(len(e.Bytes)))
		buf.write(e.Bytes)

		for i+1 < len(exts) && exts[i+1].Function == 0 {
			i++
			cont := exts[i]
			if len(cont.Bytes) > maxSubBlockLen {
				return newError(ErrDataTooBig, "extension sub-block longer than 255 bytes")
			}
			buf.writeByte(byte(len(cont.Bytes)))
			buf.write(cont.Bytes)
		}
		buf.writeByte(0)
	}
	return nil
}

func writeFrame(buf *byteBuf, frame *Frame, enc *lzw.Encoder, minCodeSize int) {
	buf.writeByte(imageIntro)
	writeShort(buf, frame.Desc.Left)
	writeShort(buf, frame.Desc.Top)
	writeShort(buf, frame.Desc.Width)
	writeShort(buf, frame.Desc.Height)

	packed := byte(0)
	if frame.Desc.Interlace {
		packed |= 0x40
	}
	if frame.Desc.ColorMap != nil && len(frame.Desc.ColorMap.Colors) > 0 {
		packed |= 0x80
		if frame.Desc.ColorMap.SortFlag {
			packed |= 0x20
		}
		packed |= byte((frame.Desc.ColorMap.BitsPerPixel() - 1) & 0x07)
	}
	buf.writeByte(packed)

	if packed&0x80 != 0 {
		writeColorMap(buf, frame.Desc.ColorMap)
	}

	buf.writeByte(byte(minCodeSize))

	raster := frame.Raster
	if frame.Desc.Interlace {
		raster = interlaceRows(raster, frame.Desc.Width, frame.Desc.Height)
	}
	lzwData := enc.Encode(raster, minCodeSize)
	buf.write(chunk(lzwData))
}
