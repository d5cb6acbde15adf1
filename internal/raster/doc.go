// Package raster provides the pixel buffer used by the contour pipeline and the
// collaborators that move pixels in and out of it.
//
// # Pixel Buffer
//
// An Image is a flat, row-major slice of 8-bit RGB triples with an explicit
// width and height. Pixel (x, y) lives at Pix[y*Width+x], with (0,0) at the
// top-left corner, X increasing rightward and Y increasing downward. Alpha is
// not carried; decoded images are flattened to their colour channels.
//
// # Codecs
//
// Decode and Encode choose a format from the file extension:
//   - ".ppm", ".pnm": binary (P6) and ASCII (P3) portable pixmaps, built in
//   - ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp": decoded
//     through the standard image registry; PNG, JPEG and BMP can be encoded
//   - any of the above followed by ".zst": the stream is zstd (de)compressed
//
// All codec failures are reported as *IOError.
//
// # Sampling
//
// SampleBicubic maps a normalized coordinate in [0,1]x[0,1] to a colour using
// cubic Hermite interpolation over the clamped 4x4 neighbourhood. Coordinates
// outside that square are a programming error and panic.
//
// # Thread Safety
//
// Image has no internal locking. The pipeline guarantees that concurrent
// writers touch disjoint pixels. Cache is safe for concurrent use.
package raster
