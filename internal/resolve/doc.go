// Package resolve determines the capture timestamp of a media file.
//
// Five interchangeable strategies implement Resolver:
//   - ExifResolver: embedded EXIF DateTimeOriginal, parsed in-process
//   - ExiftoolResolver: the exiftool helper, asked for DateTimeOriginal only
//   - FFprobeResolver: ffprobe, asked for the first video stream's creation_time
//   - CreateTimeResolver: the filesystem birth time, where the OS exposes one
//   - ModifyTimeResolver: the filesystem modification time
//
// Exactly one strategy is active per run; New selects it from a
// types.Strategy. External helpers run synchronously through a Runner with
// no timeout, so a hung helper blocks the caller until it exits.
package resolve
