package ingest

import (
	"fmt"
	"sort"

	"github.com/senkathir/sorkuvai/app/corpus"
	"github.com/senkathir/sorkuvai/app/parser"
)

// The corpora registry. Each entry is the declarative replacement for one
// group of the source corpus's per-work import scripts: marker bindings,
// source files in canonical order, and work metadata.

func year(y int) *int { return &y }

// lesserText is the shared flat binding of the didactic anthologies of the
// eighteen lesser texts.
func lesserText(name, tamil string, order int, file string) WorkSpec {
	return WorkSpec{
		Binding: parser.Binding{
			Work: corpus.Work{
				WorkName:             name,
				WorkNameTamil:        tamil,
				Period:               "post-Sangam",
				ChronologyStartYear:  year(500),
				ChronologyEndYear:    year(800),
				ChronologyConfidence: corpus.ConfidenceLow,
				CanonicalOrder:       order,
			},
			VerseMode:      parser.ExplicitMarker,
			VerseType:      "paadal",
			VerseTypeTamil: "பாடல்",
		},
		Files: []string{file},
	}
}

// thinaiText adds the five-landscape section level used by the akam
// anthologies of the canon. Thinai markers may lack digits; numbering
// resumes within the work.
func thinaiText(name, tamil string, order int, file string) WorkSpec {
	ws := lesserText(name, tamil, order, file)
	ws.Binding.L2 = &parser.LevelBinding{LevelType: "thinai", LevelTypeTamil: "திணை"}
	return ws
}

// prabandhamThousand is one of the four "thousand" files, each holding
// several Alvar works behind "@author - title" headers and linked into its
// own sub-collection.
func prabandhamThousand(name, tamil string, position, order int, file string) WorkSpec {
	return WorkSpec{
		Binding: parser.Binding{
			Work: corpus.Work{
				// Work rows come from the "@author - title" headers.
				Period:               "Pallava",
				ChronologyStartYear:  year(600),
				ChronologyEndYear:    year(900),
				ChronologyConfidence: corpus.ConfidenceMedium,
				CanonicalOrder:       order,
			},
			VerseMode:      parser.ExplicitMarker,
			VerseType:      "pasuram",
			VerseTypeTamil: "பாசுரம்",
			MultiWork:      true,
		},
		Files: []string{file},
		SubCollection: &corpus.Collection{
			CollectionName:      name,
			CollectionNameTamil: tamil,
			CollectionType:      corpus.CollectionDevotional,
			SortOrder:           position,
		},
	}
}

var corpora = []Corpus{
	{
		Name: "sangam",
		Collection: corpus.Collection{
			CollectionName:      "Sangam Ilakkiyam",
			CollectionNameTamil: "சங்க இலக்கியம்",
			CollectionType:      corpus.CollectionTradition,
			Description:         "The classical Sangam anthologies",
			SortOrder:           1,
		},
		Works: []WorkSpec{
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Kurunthogai",
						WorkNameTamil:        "குறுந்தொகை",
						Period:               "Sangam",
						ChronologyStartYear:  year(-100),
						ChronologyEndYear:    year(200),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       2,
					},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"kurunthogai.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Natrinai",
						WorkNameTamil:        "நற்றிணை",
						Period:               "Sangam",
						ChronologyStartYear:  year(-100),
						ChronologyEndYear:    year(200),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       1,
					},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"natrinai.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Purananuru",
						WorkNameTamil:        "புறநானூறு",
						Period:               "Sangam",
						ChronologyStartYear:  year(-100),
						ChronologyEndYear:    year(250),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       8,
					},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"purananuru.txt"},
			},
		},
	},
	{
		Name: "keelkanakku",
		Collection: corpus.Collection{
			CollectionName:      "Pathinen Keelkanakku",
			CollectionNameTamil: "பதினெண் கீழ்க்கணக்கு",
			CollectionType:      corpus.CollectionCanon,
			Description:         "The eighteen lesser texts",
			SortOrder:           2,
		},
		Works: []WorkSpec{
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Thirukkural",
						WorkNameTamil:        "திருக்குறள்",
						Author:               "Thiruvalluvar",
						AuthorTamil:          "திருவள்ளுவர்",
						Period:               "post-Sangam",
						ChronologyStartYear:  year(300),
						ChronologyEndYear:    year(500),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       19,
					},
					L1Alt:          &parser.LevelBinding{LevelType: "paal", LevelTypeTamil: "பால்"},
					L2:             &parser.LevelBinding{LevelType: "iyal", LevelTypeTamil: "இயல்"},
					L3:             &parser.LevelBinding{LevelType: "adhikaram", LevelTypeTamil: "அதிகாரம்"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "kural",
					VerseTypeTamil: "குறள்",
				},
				Files: []string{"thirukkural.txt"},
			},
			lesserText("Naladiyar", "நாலடியார்", 20, "naladiyar.txt"),
			lesserText("Nanmanikkadigai", "நான்மணிக்கடிகை", 21, "nanmanikkadigai.txt"),
			lesserText("Inna Narpathu", "இன்னா நாற்பது", 22, "inna_narpathu.txt"),
			lesserText("Iniyavai Narpathu", "இனியவை நாற்பது", 23, "iniyavai_narpathu.txt"),
			lesserText("Kar Narpathu", "கார் நாற்பது", 24, "kar_narpathu.txt"),
			lesserText("Kalavazhi Narpathu", "களவழி நாற்பது", 25, "kalavazhi_narpathu.txt"),
			thinaiText("Ainthinai Aimbathu", "ஐந்திணை ஐம்பது", 26, "ainthinai_aimbathu.txt"),
			thinaiText("Ainthinai Ezhubathu", "ஐந்திணை எழுபது", 27, "ainthinai_ezhubathu.txt"),
			thinaiText("Thinaymozhi Aimbathu", "திணைமொழி ஐம்பது", 28, "thinaymozhi_aimbathu.txt"),
			thinaiText("Thinaimalai Noorraimpathu", "திணைமாலை நூற்றைம்பது", 29, "thinaimalai_noorraimpathu.txt"),
			lesserText("Thirigadugam", "திரிகடுகம்", 30, "thirigadugam.txt"),
			lesserText("Asarakkovai", "ஆசாரக்கோவை", 31, "asarakkovai.txt"),
			lesserText("Pazhamozhi Nanuru", "பழமொழி நானூறு", 32, "pazhamozhi_nanuru.txt"),
			lesserText("Sirupanchamoolam", "சிறுபஞ்சமூலம்", 33, "sirupanchamoolam.txt"),
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Muthumozhikkanchi",
						WorkNameTamil:        "முதுமொழிக்காஞ்சி",
						Period:               "post-Sangam",
						ChronologyStartYear:  year(500),
						ChronologyEndYear:    year(800),
						ChronologyConfidence: corpus.ConfidenceLow,
						CanonicalOrder:       34,
					},
					L2:             &parser.LevelBinding{LevelType: "paththu", LevelTypeTamil: "பத்து"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"muthumozhikkanchi.txt"},
			},
			lesserText("Elathi", "ஏலாதி", 35, "elathi.txt"),
			thinaiText("Kainnilai", "கைந்நிலை", 36, "kainnilai.txt"),
		},
	},
	{
		Name: "ilakkanam",
		Collection: corpus.Collection{
			CollectionName:      "Ilakkana Noolgal",
			CollectionNameTamil: "இலக்கண நூல்கள்",
			CollectionType:      corpus.CollectionGenre,
			Description:         "Grammar treatises",
			SortOrder:           3,
		},
		Works: []WorkSpec{
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Tolkappiyam",
						WorkNameTamil:        "தொல்காப்பியம்",
						Author:               "Tolkappiyar",
						AuthorTamil:          "தொல்காப்பியர்",
						Period:               "Sangam",
						ChronologyStartYear:  year(-300),
						ChronologyEndYear:    year(100),
						ChronologyConfidence: corpus.ConfidenceLow,
						CanonicalOrder:       40,
					},
					L1:             &parser.LevelBinding{LevelType: "adhikaram", LevelTypeTamil: "அதிகாரம்"},
					L2:             &parser.LevelBinding{LevelType: "iyal", LevelTypeTamil: "இயல்"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "nurpaa",
					VerseTypeTamil: "நூற்பா",
					// Single letters in a grammar text are metalinguistic
					// references, not concordance words.
					SkipSingleCharWords: true,
				},
				Files: []string{
					"tolkappiyam_ezhuthathikaram.txt",
					"tolkappiyam_sollathikaram.txt",
					"tolkappiyam_porulathikaram.txt",
				},
			},
		},
	},
	{
		Name: "kappiyangal",
		Collection: corpus.Collection{
			CollectionName:      "Aimperum Kappiyangal",
			CollectionNameTamil: "ஐம்பெருங் காப்பியங்கள்",
			CollectionType:      corpus.CollectionGenre,
			Description:         "The five great epics and the later epics",
			SortOrder:           4,
		},
		Works: []WorkSpec{
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Silapathikaram",
						WorkNameTamil:        "சிலப்பதிகாரம்",
						Author:               "Ilango Adigal",
						AuthorTamil:          "இளங்கோ அடிகள்",
						Period:               "post-Sangam",
						ChronologyStartYear:  year(400),
						ChronologyEndYear:    year(600),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       41,
					},
					L1:        &parser.LevelBinding{LevelType: "kandam", LevelTypeTamil: "காண்டம்"},
					L2:        &parser.LevelBinding{LevelType: "kaathai", LevelTypeTamil: "காதை"},
					VerseMode: parser.ExplicitMarker,
					// Each Kaathai is itself one long named verse.
					OneVersePerSection: true,
					SectionAsVerseName: true,
				},
				Files: []string{"silapathikaram.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Manimegalai",
						WorkNameTamil:        "மணிமேகலை",
						Author:               "Seethalai Saathanar",
						AuthorTamil:          "சீத்தலைச் சாத்தனார்",
						Period:               "post-Sangam",
						ChronologyStartYear:  year(500),
						ChronologyEndYear:    year(600),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       42,
					},
					// Each "#N" kathai is one long verse; blank lines
					// inside it are layout.
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "kathai",
					VerseTypeTamil: "காதை",
				},
				Files: []string{"manimegalai.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Seevaka Sinthamani",
						WorkNameTamil:        "சீவக சிந்தாமணி",
						Author:               "Thiruthakka Thevar",
						AuthorTamil:          "திருத்தக்கதேவர்",
						Period:               "Chola",
						ChronologyStartYear:  year(900),
						ChronologyEndYear:    year(1000),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       43,
					},
					L2:             &parser.LevelBinding{LevelType: "ilampagam", LevelTypeTamil: "இலம்பகம்"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"seevaka_sinthamani.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Kundalakesi",
						WorkNameTamil:        "குண்டலகேசி",
						Description:          "Surviving fragments of the lost Buddhist epic",
						Period:               "post-Sangam",
						ChronologyStartYear:  year(400),
						ChronologyEndYear:    year(600),
						ChronologyConfidence: corpus.ConfidenceLow,
						CanonicalOrder:       44,
					},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"kundalakesi.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Kambaramayanam",
						WorkNameTamil:        "கம்பராமாயணம்",
						Author:               "Kambar",
						AuthorTamil:          "கம்பர்",
						Period:               "Chola",
						ChronologyStartYear:  year(1100),
						ChronologyEndYear:    year(1200),
						ChronologyConfidence: corpus.ConfidenceHigh,
						CanonicalOrder:       45,
					},
					L1: &parser.LevelBinding{LevelType: "kandam", LevelTypeTamil: "காண்டம்"},
					L2: &parser.LevelBinding{
						LevelType:      "padalam",
						LevelTypeTamil: "படலம்",
						TrimNameSuffix: " படலம்",
					},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				// Yutha Kandam is sharded across four files; its padalams
				// re-enter the same logical section.
				Files: []string{
					"kambaramayanam_1.txt",
					"kambaramayanam_2.txt",
					"kambaramayanam_3.txt",
					"kambaramayanam_4.txt",
					"kambaramayanam_5.txt",
					"kambaramayanam_6a.txt",
					"kambaramayanam_6b.txt",
					"kambaramayanam_6c.txt",
					"kambaramayanam_6d.txt",
				},
			},
		},
	},
	{
		Name: "thirumurai",
		Collection: corpus.Collection{
			CollectionName:      "Panniru Thirumurai",
			CollectionNameTamil: "பன்னிரு திருமுறை",
			CollectionType:      corpus.CollectionDevotional,
			Description:         "The twelve Shaivite canonical books",
			SortOrder:           5,
		},
		Works: []WorkSpec{
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Devaram - Thirumurai 1",
						Period:               "Pallava",
						ChronologyStartYear:  year(600),
						ChronologyEndYear:    year(700),
						ChronologyConfidence: corpus.ConfidenceHigh,
						CanonicalOrder:       60,
					},
					L2:                 &parser.LevelBinding{LevelType: "pathigam", LevelTypeTamil: "பதிகம்"},
					VerseMode:          parser.ExplicitMarker,
					VerseType:          "paadal",
					VerseTypeTamil:     "பாடல்",
					HeaderDeclaresWork: true,
				},
				Files: []string{"devaram_1.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Thiruvasagam",
						WorkNameTamil:        "திருவாசகம்",
						Author:               "Manikkavasagar",
						AuthorTamil:          "மாணிக்கவாசகர்",
						Period:               "Pandya",
						ChronologyStartYear:  year(800),
						ChronologyEndYear:    year(900),
						ChronologyConfidence: corpus.ConfidenceHigh,
						CanonicalOrder:       67,
					},
					L2:             &parser.LevelBinding{LevelType: "pathigam", LevelTypeTamil: "பதிகம்"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"thiruvasagam.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Thirukovayar",
						WorkNameTamil:        "திருக்கோவையார்",
						Author:               "Manikkavasagar",
						AuthorTamil:          "மாணிக்கவாசகர்",
						Period:               "Pandya",
						ChronologyStartYear:  year(800),
						ChronologyEndYear:    year(900),
						ChronologyConfidence: corpus.ConfidenceHigh,
						CanonicalOrder:       68,
					},
					// Digit-less "*" iyal lines are dropped; the numbered
					// adhikarams carry the structure.
					L2:             &parser.LevelBinding{LevelType: "adhikaram", LevelTypeTamil: "அதிகாரம்"},
					L3:             &parser.LevelBinding{LevelType: "thurai", LevelTypeTamil: "துறை"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"thirukovayar.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						// Work rows come from the "&N <author>" markers.
						Period:               "Chola",
						ChronologyStartYear:  year(900),
						ChronologyEndYear:    year(1100),
						ChronologyConfidence: corpus.ConfidenceMedium,
						CanonicalOrder:       69,
					},
					L2:                  &parser.LevelBinding{LevelType: "pathigam", LevelTypeTamil: "பதிகம்"},
					VerseMode:           parser.ExplicitMarker,
					VerseType:           "paadal",
					VerseTypeTamil:      "பாடல்",
					MultiWork:           true,
					MultiWorkNameFormat: "%s பதிகங்கள்",
				},
				Files: []string{"thiruvisaippa.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Thirumanthiram",
						WorkNameTamil:        "திருமந்திரம்",
						Author:               "Thirumoolar",
						AuthorTamil:          "திருமூலர்",
						Period:               "post-Sangam",
						ChronologyStartYear:  year(500),
						ChronologyEndYear:    year(800),
						ChronologyConfidence: corpus.ConfidenceLow,
						CanonicalOrder:       70,
					},
					L1:             &parser.LevelBinding{LevelType: "thanthiram", LevelTypeTamil: "தந்திரம்"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"thirumanthiram.txt"},
			},
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Periya Puranam",
						WorkNameTamil:        "பெரிய புராணம்",
						Author:               "Sekkizhar",
						AuthorTamil:          "சேக்கிழார்",
						Period:               "Chola",
						ChronologyStartYear:  year(1100),
						ChronologyEndYear:    year(1150),
						ChronologyConfidence: corpus.ConfidenceHigh,
						CanonicalOrder:       72,
					},
					// Plain "N. <name> சருக்கம்" lines are running heads;
					// the "@" puranam markers carry the structure.
					L2:             &parser.LevelBinding{LevelType: "puranam", LevelTypeTamil: "புராணம்"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"periya_puranam.txt"},
			},
		},
	},
	{
		Name: "prabandham",
		Collection: corpus.Collection{
			CollectionName:      "Naalayira Divya Prabandham",
			CollectionNameTamil: "நாலாயிர திவ்விய பிரபந்தம்",
			CollectionType:      corpus.CollectionDevotional,
			Description:         "The four thousand Vaishnavite pasurams of the twelve Alvars",
			SortOrder:           6,
		},
		Works: []WorkSpec{
			prabandhamThousand("Muthal Aayiram", "முதல் ஆயிரம்", 1, 80, "prabandham_muthal_aayiram.txt"),
			prabandhamThousand("Irandam Aayiram", "இரண்டாம் ஆயிரம்", 2, 81, "prabandham_irandam_aayiram.txt"),
			prabandhamThousand("Moondram Aayiram", "மூன்றாம் ஆயிரம்", 3, 82, "prabandham_moondram_aayiram.txt"),
			prabandhamThousand("Naangam Aayiram", "நான்காம் ஆயிரம்", 4, 83, "prabandham_naangam_aayiram.txt"),
		},
	},
	{
		Name: "bakthi",
		Collection: corpus.Collection{
			CollectionName:      "Bakthi Ilakkiyam",
			CollectionNameTamil: "பக்தி இலக்கியம்",
			CollectionType:      corpus.CollectionDevotional,
			Description:         "Later devotional literature outside the Shaivite and Vaishnavite canons",
			SortOrder:           7,
		},
		Works: []WorkSpec{
			{
				Binding: parser.Binding{
					Work: corpus.Work{
						WorkName:             "Seerapuranam",
						WorkNameTamil:        "சீறாப்புராணம்",
						Author:               "Umaru Pulavar",
						AuthorTamil:          "உமறுப் புலவர்",
						Period:               "Nayak",
						ChronologyStartYear:  year(1650),
						ChronologyEndYear:    year(1700),
						ChronologyConfidence: corpus.ConfidenceHigh,
						CanonicalOrder:       90,
					},
					L1:             &parser.LevelBinding{LevelType: "kandam", LevelTypeTamil: "காண்டம்"},
					L2:             &parser.LevelBinding{LevelType: "padalam", LevelTypeTamil: "படலம்"},
					VerseMode:      parser.ExplicitMarker,
					VerseType:      "paadal",
					VerseTypeTamil: "பாடல்",
				},
				Files: []string{"seerapuranam.txt"},
			},
		},
	},
}

// Corpora returns the registered corpora sorted by name.
func Corpora() []Corpus {
	out := make([]Corpus, len(corpora))
	copy(out, corpora)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindCorpus looks a corpus up by its registry name.
func FindCorpus(name string) (Corpus, error) {
	for _, c := range corpora {
		if c.Name == name {
			return c, nil
		}
	}
	return Corpus{}, fmt.Errorf("unknown corpus %q", name)
}
