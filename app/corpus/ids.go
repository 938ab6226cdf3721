package corpus

// IDSpace hands out surrogate ids for one ingestion run. The store seeds it
// from the current table maxima before parsing begins; the parser then
// increments purely in memory, so ids are gapless and monotonic within a run.
type IDSpace struct {
	Work           int64
	Collection     int64
	WorkCollection int64
	Section        int64
	Verse          int64
	Line           int64
	Word           int64
}

func (s *IDSpace) NextWork() int64           { s.Work++; return s.Work }
func (s *IDSpace) NextCollection() int64     { s.Collection++; return s.Collection }
func (s *IDSpace) NextWorkCollection() int64 { s.WorkCollection++; return s.WorkCollection }
func (s *IDSpace) NextSection() int64        { s.Section++; return s.Section }
func (s *IDSpace) NextVerse() int64          { s.Verse++; return s.Verse }
func (s *IDSpace) NextLine() int64           { s.Line++; return s.Line }
func (s *IDSpace) NextWord() int64           { s.Word++; return s.Word }
