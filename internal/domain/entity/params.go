package entity

// Допустимые границы настроечных параметров анализа.
const (
	MinBlurSize  = 75
	MaxBlurSize  = 401
	MinThreshold = 1
	MaxThreshold = 255

	DefaultBlurSize  = 201
	DefaultThreshold = 17
)

// Params настраиваемые параметры анализа
type Params struct {
	BlurSize  int // размер ядра гауссова размытия при оценке фона освещения
	Threshold int // порог бинаризации кандидатов в дефекты
}

// DefaultParams возвращает параметры по умолчанию.
func DefaultParams() Params {
	return Params{
		BlurSize:  DefaultBlurSize,
		Threshold: DefaultThreshold,
	}
}

// Normalize прижимает параметры к допустимым границам.
// Размер ядра размытия дополнительно приводится к нечётному.
func (p Params) Normalize() Params {
	if p.BlurSize < MinBlurSize {
		p.BlurSize = MinBlurSize
	}
	if p.BlurSize > MaxBlurSize {
		p.BlurSize = MaxBlurSize
	}
	if p.BlurSize%2 == 0 {
		p.BlurSize++
	}

	if p.Threshold < MinThreshold {
		p.Threshold = MinThreshold
	}
	if p.Threshold > MaxThreshold {
		p.Threshold = MaxThreshold
	}

	return p
}
