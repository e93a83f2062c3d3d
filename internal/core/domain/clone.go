package domain

// Clone returns a deep copy of the state graph. Readers outside the
// owning store only ever see clones.
func (s *State) Clone() *State {
	out := &State{
		ActiveSceneID:  s.ActiveSceneID,
		Transition:     s.Transition,
		ActivePresetID: s.ActivePresetID,
	}

	out.Scenes = make([]*Scene, len(s.Scenes))
	for i, sc := range s.Scenes {
		out.Scenes[i] = sc.Clone()
	}

	if s.Capture != nil {
		c := *s.Capture
		if s.Capture.Bounds != nil {
			b := *s.Capture.Bounds
			c.Bounds = &b
		}
		out.Capture = &c
	}

	out.Webcams = make([]*WebcamSource, len(s.Webcams))
	for i, w := range s.Webcams {
		cw := *w
		cw.Placeable = w.Placeable.Clone()
		out.Webcams[i] = &cw
	}
	out.Phones = make([]*PhoneSource, len(s.Phones))
	for i, p := range s.Phones {
		cp := *p
		cp.Placeable = p.Placeable.Clone()
		out.Phones[i] = &cp
	}
	out.SyncLegacyViews()

	out.Overlays = make([]*Overlay, len(s.Overlays))
	for i, o := range s.Overlays {
		out.Overlays[i] = o.Clone()
	}

	out.SavedDevices = make([]*SavedDevice, len(s.SavedDevices))
	for i, d := range s.SavedDevices {
		cd := *d
		out.SavedDevices[i] = &cd
	}

	out.AudioTracks = make([]*AudioTrack, len(s.AudioTracks))
	for i, t := range s.AudioTracks {
		ct := *t
		out.AudioTracks[i] = &ct
	}

	out.Presets = make([]*StreamPreset, len(s.Presets))
	for i, p := range s.Presets {
		out.Presets[i] = p.Clone()
	}

	if s.CurrentSession != nil {
		out.CurrentSession = s.CurrentSession.Clone()
	}
	out.PastSessions = make([]*StreamSession, len(s.PastSessions))
	for i, sess := range s.PastSessions {
		out.PastSessions[i] = sess.Clone()
	}

	return out
}

// Clone deep-copies a placeable, including its optional custom fields.
func (p Placeable) Clone() Placeable {
	out := p
	if p.CustomPosition != nil {
		pt := *p.CustomPosition
		out.CustomPosition = &pt
	}
	if p.CustomSize != nil {
		d := *p.CustomSize
		out.CustomSize = &d
	}
	return out
}

func (sc *Scene) Clone() *Scene {
	out := *sc
	out.Config = sc.Config.Clone()
	return &out
}

func (c SceneConfig) Clone() SceneConfig {
	out := SceneConfig{}
	if c.Webcam != nil {
		p := c.Webcam.Clone()
		out.Webcam = &p
	}
	if c.Phone != nil {
		p := c.Phone.Clone()
		out.Phone = &p
	}
	if c.Overlays != nil {
		out.Overlays = make(map[OverlayID]Placeable, len(c.Overlays))
		for id, p := range c.Overlays {
			out.Overlays[id] = p.Clone()
		}
	}
	return out
}

func (o *Overlay) Clone() *Overlay {
	out := *o
	out.Placeable = o.Placeable.Clone()
	if o.Image != nil {
		v := *o.Image
		out.Image = &v
	}
	if o.Text != nil {
		v := *o.Text
		out.Text = &v
	}
	if o.Video != nil {
		v := *o.Video
		out.Video = &v
	}
	if o.Browser != nil {
		v := *o.Browser
		out.Browser = &v
	}
	return &out
}

func (p *StreamPreset) Clone() *StreamPreset {
	out := *p
	out.Platforms = append([]PlatformKey(nil), p.Platforms...)
	if p.AudioLevels != nil {
		out.AudioLevels = make(map[TrackID]int, len(p.AudioLevels))
		for id, v := range p.AudioLevels {
			out.AudioLevels[id] = v
		}
	}
	return &out
}

func (s *StreamSession) Clone() *StreamSession {
	out := *s
	out.Platforms = append([]PlatformKey(nil), s.Platforms...)
	out.Markers = append([]StreamMarker(nil), s.Markers...)
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	return &out
}
