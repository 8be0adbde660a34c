package ffmpeg

// Test-only accessors for the external ffmpeg_test package, which cannot live
// in this package because testsupport imports it (import cycle in test).

var CommandContextPtr = &commandContext

func (c *CLI) BinaryForTest() string { return c.binary }

func (c *CLI) CRFForTest() int { return c.crf }
