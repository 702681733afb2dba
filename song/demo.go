package song

// Demo returns the built-in melody: a short rise and fall around middle C
func Demo() *Song {
	return &Song{
		Title: "恋如海",
		Notes: []Note{
			{Time: 0.0, Pitch: 60, Duration: 0.3, Lyric: "恋"},
			{Time: 0.5, Pitch: 64, Duration: 0.3, Lyric: "如"},
			{Time: 1.0, Pitch: 67, Duration: 0.3},
			{Time: 1.5, Pitch: 72, Duration: 0.4, Lyric: "海"},
			{Time: 2.0, Pitch: 69, Duration: 0.3, Lyric: "如"},
			{Time: 2.5, Pitch: 65, Duration: 0.3},
			{Time: 3.0, Pitch: 62, Duration: 0.3, Lyric: "飘"},
			{Time: 3.5, Pitch: 67, Duration: 0.4, Lyric: "向"},
			{Time: 4.0, Pitch: 71, Duration: 0.3, Lyric: "你"},
			{Time: 4.5, Pitch: 64, Duration: 0.3},
			{Time: 5.0, Pitch: 60, Duration: 0.3, Lyric: "去"},
			{Time: 5.5, Pitch: 65, Duration: 0.4, Lyric: "作"},
			{Time: 6.0, Pitch: 69, Duration: 0.3, Lyric: "化"},
			{Time: 6.5, Pitch: 72, Duration: 0.3},
			{Time: 7.0, Pitch: 67, Duration: 0.4, Lyric: "化"},
			{Time: 7.5, Pitch: 63, Duration: 0.3, Lyric: "作"},
			{Time: 8.0, Pitch: 60, Duration: 0.3, Lyric: "泥"},
			{Time: 8.5, Pitch: 65, Duration: 0.3},
			{Time: 9.0, Pitch: 70, Duration: 0.4, Lyric: "化"},
			{Time: 9.5, Pitch: 74, Duration: 0.3},
		},
	}
}
