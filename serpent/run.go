package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/peterhil/serpent/bio"
	"github.com/peterhil/serpent/checkpoint"
	"github.com/peterhil/serpent/codon"
	"github.com/peterhil/serpent/dsp"
	"github.com/peterhil/serpent/kmer"
	"github.com/peterhil/serpent/visual"
)

// settings gathers the parsed command line into one place so the
// same (frame, strand, policy) tuple threads explicitly through every
// encoding call.
type settings struct {
	command string
	gcode   *codon.GeneticCode
	frame   int
	strand  codon.Strand
	policy  dsp.Policy
	store   *checkpoint.Store
	out     io.Writer
}

// fileReport carries one worker's result to the collector.
type fileReport struct {
	path  string
	text  string
	words []string
	res   *checkpoint.Result
	err   error
}

// inputFiles returns the file arguments of the active command.
func (s *settings) inputFiles() []string {
	switch s.command {
	case cmdCodons.FullCommand():
		return *codonsFiles
	case cmdPep.FullCommand():
		return *pepFiles
	case cmdSeq.FullCommand():
		return *seqFiles
	case cmdAC.FullCommand():
		return *acFiles
	case cmdFFT.FullCommand():
		return *fftFiles
	case cmdHist.FullCommand():
		return *histFiles
	case cmdImage.FullCommand():
		return *imageFiles
	case cmdEncode.FullCommand():
		return *encodeFiles
	case cmdDecode.FullCommand():
		return *decodeFiles
	}
	return nil
}

// run processes every input file over a fixed worker pool. Files are
// independent units of work; the collector loop below is the single
// writer for the output stream, the checkpoint store and the trie.
func (s *settings) run(ctx context.Context) (*summary, error) {
	files := s.inputFiles()
	sum := &summary{Files: len(files)}

	var trie *kmer.Index
	if s.command == cmdSeq.FullCommand() {
		trie = kmer.New(3 * *seqLength)
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan string)
	reports := make(chan *fileReport)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				reports <- s.analyseFile(ctx, path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			if s.store.Done(s.command, path) {
				log.Noticef("Skipping %s: already done", path)
				continue
			}
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(reports)
	}()

	failed := 0
	for rep := range reports {
		if rep.err != nil {
			log.Errorf("%s: %v", rep.path, rep.err)
			failed++
			continue
		}
		for _, w := range rep.words {
			if err := trie.Insert(w); err != nil {
				return nil, err
			}
		}
		if rep.text != "" {
			fmt.Fprint(s.out, rep.text)
		}
		if err := s.store.Save(rep.res); err != nil {
			log.Error("Error saving checkpoint:", err)
		}
		sum.Sequences += rep.res.Sequences
		sum.Codons += rep.res.Codons
		sum.Ambiguous += rep.res.Ambiguous
		sum.Dropped += rep.res.Dropped
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failed > 0 {
		return nil, fmt.Errorf("%d of %d files failed", failed, len(files))
	}

	if trie != nil {
		s.reportTrie(trie)
	}
	return sum, nil
}

// reportTrie prints the corpus-wide k-mer statistics.
func (s *settings) reportTrie(trie *kmer.Index) {
	fmt.Fprintf(s.out, "k-mers of %d codons: %d distinct, %d total\n",
		*seqLength, trie.Distinct(), trie.Total())
	for _, kc := range trie.MostFrequent(*seqTop) {
		fmt.Fprintf(s.out, "%s\t%d\n", kc.Kmer, kc.Count)
	}
	if *seqPrefix != "" {
		prefix := strings.ToUpper(*seqPrefix)
		fmt.Fprintf(s.out, "prefix %s\t%d\n", prefix, trie.CountWithPrefix(prefix))
	}
}

// analyseFile parses one FASTA file and analyses its sequences
// sequentially: encoding must complete before anything consumes it.
func (s *settings) analyseFile(ctx context.Context, path string) *fileReport {
	rep := &fileReport{
		path: path,
		res: &checkpoint.Result{
			Path:    path,
			Command: s.command,
		},
	}

	f, err := os.Open(path)
	if err != nil {
		rep.err = err
		return rep
	}
	defer f.Close()

	alphabet := bio.AutoAlphabet(path)
	if *aminoInput {
		alphabet = bio.AminoAcid
	}
	seqs, err := bio.ParseFasta(f, alphabet)
	if err != nil {
		rep.err = err
		return rep
	}

	var b strings.Builder
	for i, seq := range seqs {
		if n := seq.NInvalid(); n > 0 {
			log.Warningf("%s: %d symbols outside the %v alphabet", seq.Name, n, alphabet)
		}
		err := s.analyseSequence(ctx, seq, i, &b, rep)
		if err == codon.ErrEmptySequence {
			log.Warningf("%s: %v", seq.Name, err)
			continue
		}
		if err != nil {
			rep.err = err
			return rep
		}
		rep.res.Sequences++
	}
	rep.res.Finished = time.Now()
	rep.text = b.String()
	return rep
}

// encode encodes one sequence with the run's (frame, strand) pair and
// accounts for it in the file result.
func (s *settings) encode(seq bio.Sequence, rep *fileReport) (*codon.Encoded, error) {
	if seq.Alphabet != bio.Nucleotide {
		return nil, fmt.Errorf("%s command needs nucleotide input", s.command)
	}
	e, err := s.gcode.Encode(seq, s.frame, s.strand)
	if err != nil {
		return nil, err
	}
	if e.Dropped > 0 {
		log.Infof("%s: dropped %d trailing symbols", seq.Name, e.Dropped)
	}
	rep.res.Codons += len(e.Codons)
	rep.res.Ambiguous += e.NAmbiguous()
	rep.res.Dropped += e.Dropped
	return e, nil
}

// samples builds the numeric encoding the analyzer commands consume.
func (s *settings) samples(seq bio.Sequence, rep *fileReport) ([]float64, error) {
	if seq.Alphabet == bio.AminoAcid {
		return aminoSamples(seq.Sequence, s.policy), nil
	}
	e, err := s.encode(seq, rep)
	if err != nil {
		return nil, err
	}
	return dsp.Samples(e.Codons, s.policy), nil
}

// aminoSamples encodes amino acid symbols by their letter value.
func aminoSamples(seq string, policy dsp.Policy) []float64 {
	xs := make([]float64, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		if bio.Classify(bio.AminoAcid, seq[i]) == bio.Base {
			xs = append(xs, float64(seq[i]-'A'))
		} else if policy == dsp.PolicyZero {
			xs = append(xs, 0)
		}
	}
	return xs
}

func (s *settings) analyseSequence(ctx context.Context, seq bio.Sequence, i int, b *strings.Builder, rep *fileReport) error {
	switch s.command {
	case cmdCodons.FullCommand():
		return s.codonsCmd(seq, b, rep)
	case cmdPep.FullCommand():
		return s.pepCmd(seq, b, rep)
	case cmdSeq.FullCommand():
		return s.seqCmd(seq, rep)
	case cmdAC.FullCommand():
		return s.acCmd(ctx, seq, i, b, rep)
	case cmdFFT.FullCommand():
		return s.fftCmd(ctx, seq, i, b, rep)
	case cmdHist.FullCommand():
		return s.histCmd(seq, i, b, rep)
	case cmdImage.FullCommand():
		return s.imageCmd(seq, i, rep)
	case cmdEncode.FullCommand():
		return s.encodeCmd(seq, b, rep)
	case cmdDecode.FullCommand():
		return s.decodeCmd(seq, b, rep)
	}
	return fmt.Errorf("unknown command: %s", s.command)
}

func (s *settings) codonsCmd(seq bio.Sequence, b *strings.Builder, rep *fileReport) error {
	e, err := s.encode(seq, rep)
	if err != nil {
		return err
	}
	t, err := dsp.CodonTable(e)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, ">%s\n", seq.Name)
	for _, k := range t.Keys() {
		fmt.Fprintf(b, "%s\t%c\t%d\t%.6f\n",
			k, s.gcode.TranslateTriplet(k), t.Counts[k], t.Freq[k])
	}
	if gc, err := dsp.GCContent(seq.Sequence); err == nil {
		fmt.Fprintf(b, "gc\t%.6f\n", gc)
	}
	fmt.Fprintf(b, "entropy\t%.6f bits\n", t.Entropy(2))
	fmt.Fprintf(b, "dropped\t%d\n", e.Dropped)
	return nil
}

func (s *settings) pepCmd(seq bio.Sequence, b *strings.Builder, rep *fileReport) error {
	var aa string
	if seq.Alphabet == bio.AminoAcid {
		aa = seq.Sequence
	} else {
		e, err := s.encode(seq, rep)
		if err != nil {
			return err
		}
		if *pepORF {
			aa = e.TranslateUntilStop()
		} else {
			aa = e.Translate()
		}
	}
	fmt.Fprintf(b, ">%s\n%s", seq.Name, bio.Wrap(aa, 80))
	t, err := dsp.WordTable(chunks(aa, *pepLength))
	if err == dsp.ErrEmptyInput {
		return nil
	}
	if err != nil {
		return err
	}
	for _, k := range t.Keys() {
		fmt.Fprintf(b, "%s\t%d\t%.6f\n", k, t.Counts[k], t.Freq[k])
	}
	return nil
}

func (s *settings) seqCmd(seq bio.Sequence, rep *fileReport) error {
	e, err := s.encode(seq, rep)
	if err != nil {
		return err
	}
	rep.words = append(rep.words, e.Words(*seqLength)...)
	return nil
}

func (s *settings) acCmd(ctx context.Context, seq bio.Sequence, i int, b *strings.Builder, rep *fileReport) error {
	xs, err := s.samples(seq, rep)
	if err != nil {
		return err
	}
	ac, err := dsp.Autocorrelogram(ctx, xs, *acLags)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, ">%s\n", seq.Name)
	for lag, r := range ac {
		fmt.Fprintf(b, "%d\t%.6f\n", lag, r)
	}
	for _, p := range dsp.Peaks(ac, *acLimit) {
		fmt.Fprintf(b, "peak\t%d\t%.6f\n", p.Lag, p.Value)
	}
	if *plotF != "" {
		path := outName(*plotF, rep.path, i)
		if err := visual.LinePlot("autocorrelation "+seq.Name, "lag", "r", ac, path); err != nil {
			return err
		}
		log.Noticef("Saved plot to %s", path)
	}
	return nil
}

func (s *settings) fftCmd(ctx context.Context, seq bio.Sequence, i int, b *strings.Builder, rep *fileReport) error {
	xs, err := s.samples(seq, rep)
	if err != nil {
		return err
	}
	spectrum, err := dsp.PowerSpectrum(ctx, xs)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, ">%s\n", seq.Name)
	for bin, p := range spectrum {
		fmt.Fprintf(b, "%d\t%.6f\n", bin, p)
	}
	if *plotF != "" {
		path := outName(*plotF, rep.path, i)
		if err := visual.LinePlot("power spectrum "+seq.Name, "bin", "power", spectrum, path); err != nil {
			return err
		}
		log.Noticef("Saved plot to %s", path)
	}
	return nil
}

func (s *settings) histCmd(seq bio.Sequence, i int, b *strings.Builder, rep *fileReport) error {
	var g *visual.CountGrid
	if seq.Alphabet == bio.AminoAcid {
		g = visual.SymbolGrid(seq.Sequence, 4, 7)
	} else {
		e, err := s.encode(seq, rep)
		if err != nil {
			return err
		}
		g = visual.CodonGrid(e.Codons)
	}
	fmt.Fprintf(b, ">%s\n", seq.Name)
	cols, rows := g.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteByte('\t')
			}
			fmt.Fprintf(b, "%.0f", g.Z(c, r))
		}
		b.WriteByte('\n')
	}
	if *plotF != "" {
		path := outName(*plotF, rep.path, i)
		if err := visual.HeatMap("histogram "+seq.Name, g, path); err != nil {
			return err
		}
		log.Noticef("Saved heat map to %s", path)
	}
	return nil
}

func (s *settings) imageCmd(seq bio.Sequence, i int, rep *fileReport) error {
	e, err := s.encode(seq, rep)
	if err != nil {
		return err
	}
	path := outName(*imagePNG, rep.path, i)
	if err := visual.WritePNG(visual.SequenceImage(e.Codons, *imageWidth), path); err != nil {
		return err
	}
	log.Noticef("Saved image to %s", path)
	return nil
}

func (s *settings) encodeCmd(seq bio.Sequence, b *strings.Builder, rep *fileReport) error {
	e, err := s.encode(seq, rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, ">%s\n", seq.Name)
	var line strings.Builder
	for _, c := range e.Codons {
		fmt.Fprintf(&line, "%d ", c)
	}
	b.WriteString(bio.Wrap(strings.TrimRight(line.String(), " "), 80))
	return nil
}

func (s *settings) decodeCmd(seq bio.Sequence, b *strings.Builder, rep *fileReport) error {
	e, err := s.encode(seq, rep)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, ">%s\n%s", seq.Name, bio.Wrap(e.Decode(), 80))
	return nil
}

// chunks splits a string into consecutive length-n words, dropping a
// partial tail.
func chunks(s string, n int) []string {
	if n < 1 {
		return nil
	}
	words := make([]string, 0, len(s)/n)
	for i := 0; i+n <= len(s); i += n {
		words = append(words, s[i:i+n])
	}
	return words
}

// outName derives a per-sequence output file name from a template:
// plot.png with input dir/data.fasta and index 1 becomes
// plot-data-1.png.
func outName(template, input string, i int) string {
	ext := filepath.Ext(template)
	base := strings.TrimSuffix(template, ext)
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return fmt.Sprintf("%s-%s-%d%s", base, name, i, ext)
}
