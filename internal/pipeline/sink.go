package pipeline

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SliceSink records events in memory.
type SliceSink struct {
	Events []Event
}

func (s *SliceSink) OnEvent(evt Event) {
	s.Events = append(s.Events, evt)
}
