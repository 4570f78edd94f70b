package main

// ChannelRow is one downstream channel row extracted from the modem's
// status table.
type ChannelRow struct {
	LockStatus    string
	Modulation    string
	Correctable   uint64
	Uncorrectable uint64
}

// ErrorTally holds the codeword error totals over all channels that are
// locked and running QAM256.
type ErrorTally struct {
	Channels      int
	Correctable   uint64
	Uncorrectable uint64
}

func tally(rows []ChannelRow) (t ErrorTally) {
	for _, row := range rows {
		if row.LockStatus != "Locked" || row.Modulation != "QAM256" {
			continue
		}
		t.Channels++
		t.Correctable += row.Correctable
		t.Uncorrectable += row.Uncorrectable
	}
	return t
}
