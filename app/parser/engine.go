package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/senkathir/sorkuvai/app/corpus"
	"github.com/senkathir/sorkuvai/app/tokenizer"
)

// sectionKey identifies a section for re-entry reuse: a later marker with
// the same parent, number, and name resumes the earlier section instead of
// opening a sibling.
type sectionKey struct {
	work   int64
	parent int64
	number int
	name   string
}

type scopeKey struct {
	work   int64
	parent int64
}

type verseBuf struct {
	verse corpus.Verse
	lines []string
}

// Engine is the marker-driven state machine shared by every work. One
// Engine instance parses one logical unit, possibly spanning several files
// for works whose top-level divisions are sharded on disk.
type Engine struct {
	binding Binding
	ids     *corpus.IDSpace
	res     Result

	file       string
	workID     int64
	headerRead bool
	workIndex  map[int64]int
	workByName map[string]int64

	sections  map[sectionKey]int64
	secIndex  map[int64]int
	secName   map[int64]string
	level     [3]int64
	// synth is the synthesized fallback section for verses that arrive
	// before any marker. It never becomes a parent.
	synth int64
	nextSort  map[scopeKey]int
	lastNum   map[scopeKey]int
	maxVerse  map[int64]int
	verseSort map[int64]int

	open        *verseBuf
	pendingRef  string
	pendingMeta corpus.Metadata
}

func New(binding Binding, ids *corpus.IDSpace) *Engine {
	return &Engine{
		binding:    binding,
		ids:        ids,
		workIndex:  map[int64]int{},
		workByName: map[string]int64{},
		sections:   map[sectionKey]int64{},
		secIndex:   map[int64]int{},
		secName:    map[int64]string{},
		nextSort:   map[scopeKey]int{},
		lastNum:    map[scopeKey]int{},
		maxVerse:   map[int64]int{},
		verseSort:  map[int64]int{},
	}
}

func (e *Engine) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()
	return e.Parse(filepath.Base(path), f)
}

// Parse consumes one source file. A second call on the same Engine re-enters
// the section tree: markers matching an earlier section resume it.
func (e *Engine) Parse(name string, r io.Reader) error {
	e.commitVerse()
	e.file = name
	e.level = [3]int64{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := e.consume(Lex(scanner.Text(), lineNo)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read source %s: %w", name, err)
	}
	return nil
}

// Finish commits any open verse, validates the buffers, and hands them over.
func (e *Engine) Finish() (*Result, error) {
	e.commitVerse()
	if len(e.res.Verses) == 0 {
		return nil, fmt.Errorf("%s: no verses parsed", e.file)
	}
	if err := e.res.Validate(); err != nil {
		return nil, err
	}
	return &e.res, nil
}

func (e *Engine) consume(ln Line) error {
	switch ln.Class {
	case ClassIgnore:
		return nil
	case ClassBlank:
		if e.binding.VerseMode == BlankBoundary && !e.binding.OneVersePerSection {
			e.commitVerse()
		}
		return nil
	case ClassWork:
		if e.binding.HeaderDeclaresWork && !e.headerRead {
			e.headerRead = true
			w := e.ensureWork()
			w.AuthorTamil = ln.Author
			w.WorkNameTamil = ln.Title
			if w.WorkName == "" {
				w.WorkName = ln.Title
			}
			return nil
		}
		return e.content(ln)
	case ClassL1, ClassL1Alt, ClassL2, ClassL2Num, ClassL3:
		if e.binding.MultiWork &&
			(ln.Class == ClassL1Alt || (ln.Class == ClassL2 && e.binding.L2 == nil)) {
			e.startWork(ln)
			return nil
		}
		lb := e.binding.levelFor(ln.Class)
		if lb == nil {
			return e.errorf(ln, "unexpected %s marker", ln.Class)
		}
		e.openSection(ln, lb)
		return nil
	case ClassRef:
		e.pendingRef = joinParts(ln.Parts)
		return nil
	case ClassVerse:
		return e.verseMarker(ln)
	case ClassVSep:
		e.commitVerse()
		return nil
	case ClassMeta:
		e.meta(ln)
		return nil
	case ClassContent:
		return e.content(ln)
	}
	return e.errorf(ln, "unclassifiable line")
}

func (e *Engine) ensureWork() *corpus.Work {
	if e.workID == 0 {
		w := e.binding.Work
		w.WorkID = e.ids.NextWork()
		e.registerWork(w)
	}
	return &e.res.Works[e.workIndex[e.workID]]
}

func (e *Engine) registerWork(w corpus.Work) {
	e.workIndex[w.WorkID] = len(e.res.Works)
	e.workByName[w.WorkName] = w.WorkID
	e.res.Works = append(e.res.Works, w)
	e.workID = w.WorkID
}

// startWork handles a work header in a multi-work file: the open verse is
// committed, section state resets, and a fresh work row opens. An
// "author - title" name splits into the two fields; a name seen before
// resumes the earlier work instead of opening a duplicate.
func (e *Engine) startWork(ln Line) {
	e.commitVerse()
	e.level = [3]int64{}
	e.synth = 0

	author := ln.Name
	name := ln.Name
	if a, t, ok := strings.Cut(ln.Name, " - "); ok {
		author = strings.TrimSpace(a)
		name = strings.TrimSpace(t)
	} else if format := e.binding.MultiWorkNameFormat; format != "" {
		name = fmt.Sprintf(format, ln.Name)
	}

	if id, ok := e.workByName[name]; ok {
		e.workID = id
		return
	}

	w := e.binding.Work
	w.WorkID = e.ids.NextWork()
	w.AuthorTamil = author
	w.WorkName = name
	w.WorkNameTamil = name
	e.registerWork(w)
}

func (e *Engine) openSection(ln Line, lb *LevelBinding) {
	e.commitVerse()
	work := e.ensureWork().WorkID
	depth := depthOf(ln.Class)
	parent := e.parentFor(depth)

	numScope := scopeKey{work, parent}
	if e.binding.NumberBareSectionsGlobally {
		numScope = scopeKey{work, -1}
	}
	number := ln.Number
	if !ln.HasNumber {
		number = e.lastNum[numScope] + 1
	}
	e.lastNum[numScope] = number

	name := ln.Name
	if lb.TrimNameSuffix != "" {
		name = strings.TrimSpace(strings.TrimSuffix(name, lb.TrimNameSuffix))
	}

	key := sectionKey{work, parent, number, name}
	if id, ok := e.sections[key]; ok {
		e.setLevel(depth, id)
		return
	}

	sortScope := scopeKey{work, parent}
	e.nextSort[sortScope]++
	sec := corpus.Section{
		SectionID:        e.ids.NextSection(),
		WorkID:           work,
		LevelType:        lb.LevelType,
		LevelTypeTamil:   lb.LevelTypeTamil,
		SectionNumber:    number,
		SectionNameTamil: name,
		SortOrder:        e.nextSort[sortScope],
		Metadata:         e.takePendingMeta(),
	}
	if parent != 0 {
		p := parent
		sec.ParentSectionID = &p
	}
	e.addSection(key, sec)
	e.setLevel(depth, sec.SectionID)
}

// currentSection returns the innermost open section, synthesizing one when
// a verse arrives before any marker: flat works get a single anonymous
// section, marker-bearing works get a number-0 invocation section.
func (e *Engine) currentSection() int64 {
	if id := e.innermostSection(); id != 0 {
		return id
	}
	if e.synth != 0 {
		return e.synth
	}
	work := e.ensureWork().WorkID
	sec := corpus.Section{
		WorkID:        work,
		SectionNumber: 1,
	}
	if !e.binding.flat() {
		sec.SectionNumber = 0
		sec.SectionName = "invocation"
		if lb := e.shallowestLevel(); lb != nil {
			sec.LevelType = lb.LevelType
			sec.LevelTypeTamil = lb.LevelTypeTamil
		}
	}
	key := sectionKey{work, 0, sec.SectionNumber, ""}
	if id, ok := e.sections[key]; ok {
		// A resumed work reuses its synthesized section.
		e.synth = id
		return id
	}
	scope := scopeKey{work, 0}
	e.nextSort[scope]++
	sec.SectionID = e.ids.NextSection()
	sec.SortOrder = e.nextSort[scope]
	sec.Metadata = e.takePendingMeta()
	e.addSection(key, sec)
	e.synth = sec.SectionID
	return sec.SectionID
}

func (e *Engine) addSection(key sectionKey, sec corpus.Section) {
	e.secIndex[sec.SectionID] = len(e.res.Sections)
	e.secName[sec.SectionID] = sec.SectionNameTamil
	e.sections[key] = sec.SectionID
	e.res.Sections = append(e.res.Sections, sec)
}

func (e *Engine) verseMarker(ln Line) error {
	e.commitVerse()
	secID := e.currentSection()
	number := ln.Number
	if e.verseSort[secID] > 0 && number <= e.maxVerse[secID] {
		// Re-entered section: numbering continues above the stored maximum.
		// A number-zero first verse (an invocation or pathigam) passes
		// through untouched.
		number = e.maxVerse[secID] + 1
	}
	e.openVerse(secID, number)
	if ln.Name != "" {
		if e.binding.InlineVerseContent {
			e.appendContent(ln.Name)
		} else {
			if e.open.verse.Metadata == nil {
				e.open.verse.Metadata = corpus.Metadata{}
			}
			e.open.verse.Metadata["title"] = ln.Name
		}
	}
	return nil
}

func (e *Engine) openVerse(secID int64, number int) {
	v := corpus.Verse{
		WorkID:         e.workID,
		SectionID:      secID,
		VerseNumber:    number,
		VerseType:      e.binding.VerseType,
		VerseTypeTamil: e.binding.VerseTypeTamil,
	}
	if e.binding.SectionAsVerseName {
		if name := e.secName[secID]; name != "" {
			v.VerseTypeTamil = name
		}
	}
	if e.pendingRef != "" {
		v.Metadata = corpus.Metadata{"source_ref": e.pendingRef}
		e.pendingRef = ""
	}
	e.open = &verseBuf{verse: v}
}

func (e *Engine) content(ln Line) error {
	if e.open == nil {
		if e.binding.VerseMode == BlankBoundary || e.binding.OneVersePerSection {
			secID := e.currentSection()
			e.openVerse(secID, e.maxVerse[secID]+1)
		} else {
			// Preamble outside any verse.
			return nil
		}
	}
	e.appendContent(ln.Raw)
	return nil
}

func (e *Engine) appendContent(raw string) {
	text := CleanLine(raw)
	if text == "" {
		return
	}
	e.open.lines = append(e.open.lines, text)
}

// commitVerse materialises the open verse with its lines and words. A verse
// that collected no lines is dropped without consuming ids.
func (e *Engine) commitVerse() {
	buf := e.open
	e.open = nil
	if buf == nil || len(buf.lines) == 0 {
		return
	}
	v := buf.verse
	v.VerseID = e.ids.NextVerse()
	v.TotalLines = len(buf.lines)
	e.verseSort[v.SectionID]++
	v.SortOrder = e.verseSort[v.SectionID]
	if v.VerseNumber > e.maxVerse[v.SectionID] {
		e.maxVerse[v.SectionID] = v.VerseNumber
	}
	e.res.Verses = append(e.res.Verses, v)

	opts := tokenizer.Options{SkipSingleChar: e.binding.SkipSingleCharWords}
	for i, text := range buf.lines {
		line := corpus.Line{
			LineID:     e.ids.NextLine(),
			VerseID:    v.VerseID,
			LineNumber: i + 1,
			LineText:   text,
		}
		e.res.Lines = append(e.res.Lines, line)
		for pos, tok := range tokenizer.Split(text, opts) {
			e.res.Words = append(e.res.Words, corpus.Word{
				WordID:       e.ids.NextWord(),
				LineID:       line.LineID,
				WordPosition: pos + 1,
				WordText:     tok.Text,
				SandhiSplit:  tok.SandhiSplit,
			})
		}
	}
}

func (e *Engine) meta(ln Line) {
	if ln.MetaKey == "" {
		return
	}
	key := metaKeyName(ln.MetaKey)
	if id := e.innermostSection(); id != 0 {
		idx := e.secIndex[id]
		if e.res.Sections[idx].Metadata == nil {
			e.res.Sections[idx].Metadata = corpus.Metadata{}
		}
		e.res.Sections[idx].Metadata[key] = ln.MetaValue
		return
	}
	if e.pendingMeta == nil {
		e.pendingMeta = corpus.Metadata{}
	}
	e.pendingMeta[key] = ln.MetaValue
}

func (e *Engine) takePendingMeta() corpus.Metadata {
	m := e.pendingMeta
	e.pendingMeta = nil
	return m
}

func (e *Engine) innermostSection() int64 {
	for d := len(e.level) - 1; d >= 0; d-- {
		if e.level[d] != 0 {
			return e.level[d]
		}
	}
	return 0
}

func (e *Engine) parentFor(depth int) int64 {
	for d := depth - 1; d >= 1; d-- {
		if e.level[d-1] != 0 {
			return e.level[d-1]
		}
	}
	return 0
}

func (e *Engine) setLevel(depth int, id int64) {
	e.level[depth-1] = id
	for d := depth; d < len(e.level); d++ {
		e.level[d] = 0
	}
}

func (e *Engine) shallowestLevel() *LevelBinding {
	for _, lb := range []*LevelBinding{e.binding.L2, e.binding.L1, e.binding.L1Alt, e.binding.L3} {
		if lb != nil {
			return lb
		}
	}
	return nil
}

func (e *Engine) errorf(ln Line, format string, args ...any) error {
	return &ParseError{File: e.file, LineNo: ln.LineNo, Message: fmt.Sprintf(format, args...)}
}

func metaKeyName(key string) string {
	if key == "பண்" {
		return "pan"
	}
	return key
}

func depthOf(class Class) int {
	switch class {
	case ClassL1, ClassL1Alt:
		return 1
	case ClassL2, ClassL2Num:
		return 2
	}
	return 3
}

func joinParts(parts []int) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, ".")
}
