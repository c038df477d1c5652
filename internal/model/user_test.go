package model

import "testing"

func TestParseSkill(t *testing.T) {
    tests := []struct {
        in      int
        want    Skill
        wantErr bool
    }{
        {in: 1, want: SkillNovice},
        {in: 2, want: SkillIntermediate},
        {in: 3, want: SkillAdvanced},
        {in: 4, want: SkillMaster},
        {in: 0, wantErr: true},
        {in: 5, wantErr: true},
        {in: -1, wantErr: true},
    }
    for _, tt := range tests {
        got, err := ParseSkill(tt.in)
        if tt.wantErr {
            if err == nil {
                t.Errorf("ParseSkill(%d) accepted an invalid tier", tt.in)
            }
            continue
        }
        if err != nil {
            t.Errorf("ParseSkill(%d) = %v", tt.in, err)
            continue
        }
        if got != tt.want {
            t.Errorf("ParseSkill(%d) = %v, want %v", tt.in, got, tt.want)
        }
    }
}

func TestSkillString(t *testing.T) {
    tests := []struct {
        in   Skill
        want string
    }{
        {SkillNovice, "NOVICE"},
        {SkillIntermediate, "INTERMEDIATE"},
        {SkillAdvanced, "ADVANCED"},
        {SkillMaster, "MASTER"},
        {Skill(0), "UNKNOWN"},
        {Skill(9), "UNKNOWN"},
    }
    for _, tt := range tests {
        if got := tt.in.String(); got != tt.want {
            t.Errorf("Skill(%d).String() = %q, want %q", tt.in, got, tt.want)
        }
    }
}
