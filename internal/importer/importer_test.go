package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agungalvian/wjg/internal/importer"
	"github.com/agungalvian/wjg/internal/ledger"
)

func TestParser_Parse(t *testing.T) {
	type args struct {
		csvContent string
	}

	type testCase struct {
		name    string
		args    args
		wantLen int
		verify  func(t *testing.T, params []ledger.CreateParams)
		wantErr bool
	}

	tests := []testCase{
		{
			name: "Rincian Export",
			args: args{
				csvContent: `Laporan Keuangan: Bulan 01 Tahun 2024
Tanggal;Keterangan;Warga;Dana;Kategori;Masuk;Keluar
05/01/2024;Iuran 2024-01;Budi;Kas Perumahan;iuran;50.000;
10/01/2024;Beli lampu jalan;;Kas RT;perawatan;;125.000
12/01/2024;Sumbangan acara;;-;;1.000.000,00;
`,
			},
			wantLen: 3,
			verify: func(t *testing.T, params []ledger.CreateParams) {
				assert.Equal(t, ledger.DirectionIn, params[0].Direction)
				assert.Equal(t, int64(50000), params[0].Amount)
				assert.Equal(t, ledger.FundHousing, params[0].Fund)
				assert.Equal(t, "iuran", params[0].Category)
				assert.True(t, params[0].Date.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))

				assert.Equal(t, ledger.DirectionOut, params[1].Direction)
				assert.Equal(t, int64(125000), params[1].Amount)
				assert.Equal(t, ledger.FundRT, params[1].Fund)

				assert.Equal(t, ledger.FundNone, params[2].Fund)
				assert.Equal(t, int64(1000000), params[2].Amount)
			},
		},
		{
			name: "Bank Mutation Comma Separated",
			args: args{
				csvContent: `Rekening,1234567890
Tanggal Transaksi,Keterangan,Jumlah,Saldo
2024-02-01,TRSF E-BANKING CR ANDI,"70.000,00","1.070.000,00"
2024-02-03,BIAYA ADM,-6.500,"1.063.500,00"
Saldo Akhir,,,"1.063.500,00"
`,
			},
			wantLen: 2,
			verify: func(t *testing.T, params []ledger.CreateParams) {
				assert.Equal(t, "TRSF E-BANKING CR ANDI", params[0].Description)
				assert.Equal(t, int64(70000), params[0].Amount)
				assert.Equal(t, ledger.DirectionIn, params[0].Direction)

				assert.Equal(t, int64(6500), params[1].Amount)
				assert.Equal(t, ledger.DirectionOut, params[1].Direction)
				assert.Equal(t, ledger.FundNone, params[1].Fund)
			},
		},
		{
			name:    "Header Only",
			args:    args{csvContent: "Tanggal;Keterangan;Dana;Kategori;Masuk;Keluar\n"},
			wantLen: 0,
		},
		{
			name:    "Unknown Layout",
			args:    args{csvContent: "Date;Description;Amount\n01/01/2024;x;1\n"},
			wantErr: true,
		},
		{
			name:    "Empty File",
			args:    args{csvContent: ""},
			wantErr: true,
		},
		{
			name: "Unknown Fund",
			args: args{
				csvContent: "Tanggal;Keterangan;Dana;Kategori;Masuk;Keluar\n01/01/2024;x;Gabungan;;1.000;\n",
			},
			wantErr: true,
		},
		{
			name: "Missing Description",
			args: args{
				csvContent: "Tanggal;Keterangan;Dana;Kategori;Masuk;Keluar\n01/01/2024;;;;1.000;\n",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.NewParser().Parse(strings.NewReader(tt.args.csvContent))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}
