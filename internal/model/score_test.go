package model

import "testing"

func TestScoreConfirmed(t *testing.T) {
    tests := []struct {
        name    string
        main    bool
        partner bool
        want    bool
    }{
        {name: "neither", want: false},
        {name: "main only", main: true, want: false},
        {name: "partner only", partner: true, want: false},
        {name: "both", main: true, partner: true, want: true},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            s := Score{ConfirmedByMain: tt.main, ConfirmedByPartner: tt.partner}
            if got := s.Confirmed(); got != tt.want {
                t.Errorf("Confirmed() = %v, want %v", got, tt.want)
            }
        })
    }
}

func TestScoreMainWon(t *testing.T) {
    tests := []struct {
        name    string
        main    int
        partner int
        want    bool
    }{
        {name: "main ahead", main: 3, partner: 1, want: true},
        {name: "partner ahead", main: 0, partner: 2, want: false},
        {name: "tie goes to partner", main: 2, partner: 2, want: false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            s := Score{MainScore: tt.main, PartnerScore: tt.partner}
            if got := s.MainWon(); got != tt.want {
                t.Errorf("MainWon() = %v, want %v", got, tt.want)
            }
        })
    }
}
