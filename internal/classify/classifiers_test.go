package classify

import "testing"

func TestGrantClassifier_EventGrant(t *testing.T) {
	c := GrantClassifier{MaxLevel: 10}
	ev := c.Classify("в результате события получено: скорпион (3")
	if ev == nil {
		t.Fatal("Classify returned nil, want event")
	}
	if ev.Type != "события" {
		t.Errorf("Type = %q, want %q", ev.Type, "события")
	}
	if ev.Creature != "скорпион" {
		t.Errorf("Creature = %q, want %q", ev.Creature, "скорпион")
	}
	if ev.CreatureLevel != 3 {
		t.Errorf("CreatureLevel = %d, want 3", ev.CreatureLevel)
	}
	if ev.HasDonor {
		t.Error("grant must not carry a donor")
	}
}

func TestGrantClassifier_OCRJunkAroundLevel(t *testing.T) {
	c := GrantClassifier{MaxLevel: 10}
	ev := c.Classify("в результате покупки набора получено: жук атлас (2%)")
	if ev == nil {
		t.Fatal("Classify returned nil, want event")
	}
	if ev.Type != "покупки набора" || ev.Creature != "жук атлас" || ev.CreatureLevel != 2 {
		t.Errorf("got %+v", ev)
	}
}

func TestGrantClassifier_LevelBound(t *testing.T) {
	c := GrantClassifier{MaxLevel: 10}
	if ev := c.Classify("в результате события получено: скорпион (23"); ev != nil {
		t.Errorf("two-digit level must be rejected, got %+v", ev)
	}
	if ev := c.Classify("в результате события получено: скорпион (9"); ev == nil {
		t.Error("level 9 must be accepted")
	}
}

func TestGrantClassifier_NoMatch(t *testing.T) {
	c := GrantClassifier{MaxLevel: 10}
	if ev := c.Classify("получено что то совсем другое"); ev != nil {
		t.Errorf("want nil, got %+v", ev)
	}
}

func TestDegradeClassifier(t *testing.T) {
	c := NewDegradeClassifier()
	body := "неудачное повышение звезды гигантский богомол (9*), скоwрпион (8*) деградировал(а) в скорпион (7*)"
	ev := c.Classify(body)
	if ev == nil {
		t.Fatal("Classify returned nil, want event")
	}
	if ev.Type != "неудачное повышение звезды" {
		t.Errorf("Type = %q", ev.Type)
	}
	if ev.Creature != "гигантский богомол" {
		t.Errorf("Creature = %q", ev.Creature)
	}
	if ev.CreatureLevel != 9 {
		t.Errorf("CreatureLevel = %d, want 9", ev.CreatureLevel)
	}
	if !ev.HasDonor {
		t.Fatal("degrade must carry a donor")
	}
	if ev.Donor != "скоwрпион" {
		t.Errorf("Donor = %q", ev.Donor)
	}
	if ev.DonorLevel != 8 {
		t.Errorf("DonorLevel = %d, want 8", ev.DonorLevel)
	}
}

func TestDegradeClassifier_LevelBound(t *testing.T) {
	c := NewDegradeClassifier()
	body := "неудачное повышение звезды гигантский богомол (11*), скорпион (8*) деградировал(а) в скорпион (7*)"
	if ev := c.Classify(body); ev != nil {
		t.Errorf("level 11 must be rejected, got %+v", ev)
	}
	body = "неудачное повышение звезды гигантский богомол (10*), скорпион (8*) деградировал(а) в скорпион (7*)"
	if ev := c.Classify(body); ev == nil {
		t.Error("level 10 must be accepted on the degrade path")
	}
}

func TestSuccessClassifier(t *testing.T) {
	c := NewSuccessClassifier()
	body := "успешное повышение звезды скорпион (7ж), потрачено: гигантский богомол (6%)"
	ev := c.Classify(body)
	if ev == nil {
		t.Fatal("Classify returned nil, want event")
	}
	if ev.Creature != "скорпион" || ev.CreatureLevel != 7 {
		t.Errorf("creature = %q level %d", ev.Creature, ev.CreatureLevel)
	}
	if ev.Donor != "гигантский богомол" || ev.DonorLevel != 6 {
		t.Errorf("donor = %q level %d", ev.Donor, ev.DonorLevel)
	}
}

func TestSuccessClassifier_DonorBound(t *testing.T) {
	c := NewSuccessClassifier()
	body := "успешное повышение звезды скорпион (7*), потрачено: гигантский богомол (12*)"
	if ev := c.Classify(body); ev != nil {
		t.Errorf("donor level 12 must be rejected, got %+v", ev)
	}
}

func TestClassifyAnt(t *testing.T) {
	ev := ClassifyAnt("из за муравья события, получил(а) муравей бульдог")
	if ev == nil {
		t.Fatal("ClassifyAnt returned nil, want event")
	}
	if ev.Type != "события" {
		t.Errorf("Type = %q, want %q", ev.Type, "события")
	}
	if ev.Ant != "муравей бульдог" {
		t.Errorf("Ant = %q, want %q", ev.Ant, "муравей бульдог")
	}
}

func TestClassifyAnt_NoMatch(t *testing.T) {
	if ev := ClassifyAnt("что то несвязное"); ev != nil {
		t.Errorf("want nil, got %+v", ev)
	}
}
